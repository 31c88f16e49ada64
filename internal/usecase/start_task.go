package usecase

import (
	"context"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// StartTaskInput contains the parameters for starting a task.
type StartTaskInput struct {
	Name        string // Task name, unique among non-pruned tasks
	Description string // Optional description
	Base        string // Base branch (defaults to the configured main branch)
	Force       bool   // Proceed despite uncommitted changes
}

// StartTaskOutput contains the result of starting a task.
type StartTaskOutput struct {
	Task *domain.Task
}

// StartTask is the use case for creating a task branch and its record.
type StartTask struct {
	tasks  domain.TaskRegistry
	store  domain.StoreInitializer
	git    domain.Git
	locker domain.RepoLocker
	clock  domain.Clock
	logger domain.Logger
	config *domain.Config
}

// NewStartTask creates a new StartTask use case.
func NewStartTask(
	tasks domain.TaskRegistry,
	store domain.StoreInitializer,
	git domain.Git,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *StartTask {
	return &StartTask{
		tasks:  tasks,
		store:  store,
		git:    git,
		locker: locker,
		clock:  clock,
		logger: logger,
		config: config,
	}
}

// Execute creates the task branch off the base tip, checks it out and
// records the task as active and current.
func (uc *StartTask) Execute(_ context.Context, in StartTaskInput) (*StartTaskOutput, error) {
	if err := domain.ValidateTaskName(in.Name); err != nil {
		return nil, err
	}
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	release, err := uc.locker.Acquire(uc.config.LockTimeoutDuration())
	if err != nil {
		return nil, err
	}
	defer release()

	// Names are reusable only after the previous holder is pruned.
	existing, err := uc.tasks.Get(in.Name)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if existing != nil && existing.State != domain.StatePruned {
		return nil, fmt.Errorf("%w: %s", domain.ErrNameConflict, in.Name)
	}

	base := in.Base
	if base == "" {
		base = uc.config.MainBranch
	}

	branch := domain.BranchName(uc.config.BranchPrefix, in.Name)
	branchExists, err := uc.git.BranchExists(branch)
	if err != nil {
		return nil, fmt.Errorf("check branch: %w", err)
	}
	if branchExists {
		return nil, fmt.Errorf("%w: branch %s already exists", domain.ErrNameConflict, branch)
	}

	dirty, err := uc.git.HasUncommittedChanges()
	if err != nil {
		return nil, fmt.Errorf("check uncommitted changes: %w", err)
	}
	if dirty && !in.Force {
		return nil, domain.ErrUncommittedChanges
	}

	baseHead, err := uc.git.Head(base)
	if err != nil {
		return nil, fmt.Errorf("resolve base %s: %w", base, err)
	}

	if err := uc.git.CreateBranch(branch, base); err != nil {
		return nil, fmt.Errorf("create branch: %w", err)
	}

	now := uc.clock.Now()
	task := &domain.Task{
		Name:          in.Name,
		Branch:        branch,
		BaseRef:       base,
		BaseHead:      baseHead,
		Description:   in.Description,
		State:         domain.StateActive,
		Created:       now,
		LastModified:  now,
		SquashOnMerge: uc.config.SquashOnMerge,
	}
	if err := uc.tasks.Put(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	if err := uc.tasks.SetCurrent(in.Name); err != nil {
		return nil, fmt.Errorf("set current task: %w", err)
	}

	uc.logger.Info(in.Name, "start", fmt.Sprintf("branch %s created from %s (%s)", branch, base, baseHead))
	return &StartTaskOutput{Task: task}, nil
}
