package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// PruneTasksInput contains the parameters for pruning closed tasks.
type PruneTasksInput struct {
	OlderThan time.Duration // Retention threshold; 0 means the configured default
	DryRun    bool          // Report candidates without changing anything
}

// PruneTasksOutput contains the pruned tasks.
type PruneTasksOutput struct {
	Pruned []*domain.Task
}

// PruneTasks is the use case for reclaiming branches of old closed tasks.
type PruneTasks struct {
	tasks  domain.TaskRegistry
	git    domain.Git
	locker domain.RepoLocker
	clock  domain.Clock
	logger domain.Logger
	config *domain.Config
}

// NewPruneTasks creates a new PruneTasks use case.
func NewPruneTasks(
	tasks domain.TaskRegistry,
	git domain.Git,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *PruneTasks {
	return &PruneTasks{
		tasks:  tasks,
		git:    git,
		locker: locker,
		clock:  clock,
		logger: logger,
		config: config,
	}
}

// Execute prunes every closed task whose last modification is older than
// the threshold. Branches already gone (aborted tasks) are tolerated, the
// current task is never touched, and pruning is idempotent.
func (uc *PruneTasks) Execute(_ context.Context, in PruneTasksInput) (*PruneTasksOutput, error) {
	release, err := uc.locker.Acquire(uc.config.LockTimeoutDuration())
	if err != nil {
		return nil, err
	}
	defer release()

	threshold := in.OlderThan
	if threshold <= 0 {
		threshold = uc.config.RetentionDuration()
	}

	all, err := uc.tasks.All()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	current, err := uc.tasks.Current()
	if err != nil {
		return nil, fmt.Errorf("get current task: %w", err)
	}

	now := uc.clock.Now()
	var pruned []*domain.Task
	for _, task := range all {
		if !task.State.CanTransitionTo(domain.StatePruned) {
			continue
		}
		if task.Name == current {
			continue
		}
		if now.Sub(task.LastModified) < threshold {
			continue
		}

		if in.DryRun {
			pruned = append(pruned, task)
			continue
		}

		exists, err := uc.git.BranchExists(task.Branch)
		if err != nil {
			return nil, fmt.Errorf("check branch %s: %w", task.Branch, err)
		}
		if exists {
			if err := uc.git.DeleteBranch(task.Branch); err != nil {
				return nil, fmt.Errorf("delete branch %s: %w", task.Branch, err)
			}
		}

		task.State = domain.StatePruned
		task.Touch(now)
		if err := uc.tasks.Put(task); err != nil {
			return nil, fmt.Errorf("save task: %w", err)
		}

		uc.logger.Info(task.Name, "prune", fmt.Sprintf("branch %s reclaimed", task.Branch))
		pruned = append(pruned, task)
	}

	return &PruneTasksOutput{Pruned: pruned}, nil
}
