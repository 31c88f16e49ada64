package usecase

import (
	"context"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// AbortTaskInput contains the parameters for aborting a task.
type AbortTaskInput struct {
	Name string // Task name; empty means the current task
}

// AbortTaskOutput contains the result of aborting a task.
type AbortTaskOutput struct {
	Task *domain.Task
}

// AbortTask is the use case for discarding a task's work entirely.
type AbortTask struct {
	tasks  domain.TaskRegistry
	git    domain.Git
	locker domain.RepoLocker
	clock  domain.Clock
	logger domain.Logger
	config *domain.Config
}

// NewAbortTask creates a new AbortTask use case.
func NewAbortTask(
	tasks domain.TaskRegistry,
	git domain.Git,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *AbortTask {
	return &AbortTask{
		tasks:  tasks,
		git:    git,
		locker: locker,
		clock:  clock,
		logger: logger,
		config: config,
	}
}

// Execute discards the task's working tree changes, returns to the base
// branch, deletes the task branch and records the task as aborted. The
// record itself is retained for audit.
func (uc *AbortTask) Execute(_ context.Context, in AbortTaskInput) (*AbortTaskOutput, error) {
	release, err := uc.locker.Acquire(uc.config.LockTimeoutDuration())
	if err != nil {
		return nil, err
	}
	defer release()

	task, err := resolveTask(uc.tasks, in.Name)
	if err != nil {
		return nil, err
	}
	if task.State != domain.StateActive {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrTaskNotActive, task.Name, task.State)
	}

	// Drop any uncommitted work before leaving the branch.
	branch, err := uc.git.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("get current branch: %w", err)
	}
	if branch == task.Branch {
		if err := uc.git.DiscardChanges(); err != nil {
			return nil, fmt.Errorf("discard changes: %w", err)
		}
	}

	if err := uc.git.Checkout(task.BaseRef); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", task.BaseRef, err)
	}
	if err := uc.git.DeleteBranch(task.Branch); err != nil {
		return nil, fmt.Errorf("delete branch: %w", err)
	}

	task.State = domain.StateAborted
	task.Touch(uc.clock.Now())
	if err := uc.tasks.Put(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	current, err := uc.tasks.Current()
	if err != nil {
		return nil, fmt.Errorf("get current task: %w", err)
	}
	if current == task.Name {
		if err := uc.tasks.SetCurrent(""); err != nil {
			return nil, fmt.Errorf("clear current task: %w", err)
		}
	}

	uc.logger.Info(task.Name, "abort", fmt.Sprintf("branch %s discarded", task.Branch))
	return &AbortTaskOutput{Task: task}, nil
}
