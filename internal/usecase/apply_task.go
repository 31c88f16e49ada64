package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// ApplyTaskInput contains the parameters for applying a task.
type ApplyTaskInput struct {
	Name string // Task name; empty means the current task
}

// ApplyTaskOutput contains the result of applying a task.
type ApplyTaskOutput struct {
	Task *domain.Task
}

// ApplyTask is the use case for staging a task's changes onto the main
// branch working tree without committing them.
type ApplyTask struct {
	tasks  domain.TaskRegistry
	git    domain.Git
	locker domain.RepoLocker
	clock  domain.Clock
	logger domain.Logger
	config *domain.Config
}

// NewApplyTask creates a new ApplyTask use case.
func NewApplyTask(
	tasks domain.TaskRegistry,
	git domain.Git,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *ApplyTask {
	return &ApplyTask{
		tasks:  tasks,
		git:    git,
		locker: locker,
		clock:  clock,
		logger: logger,
		config: config,
	}
}

// Execute checks out the base branch, merges the task branch without
// committing, and returns to the task branch. On conflict the merge is
// aborted and the task is left untouched.
func (uc *ApplyTask) Execute(_ context.Context, in ApplyTaskInput) (*ApplyTaskOutput, error) {
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

	if err := uc.git.Checkout(task.BaseRef); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", task.BaseRef, err)
	}

	if err := uc.git.Merge(task.Branch, domain.MergeWorkingTree, ""); err != nil {
		if errors.Is(err, domain.ErrMergeConflict) {
			uc.logger.Warn(task.Name, "apply", "merge conflict, rolling back")
			if abortErr := uc.git.AbortMerge(); abortErr != nil {
				return nil, fmt.Errorf("abort conflicted merge: %w", abortErr)
			}
		}
		// Leave HEAD on the task branch on every failure path.
		if coErr := uc.git.Checkout(task.Branch); coErr != nil {
			return nil, fmt.Errorf("return to task branch: %w", coErr)
		}
		return nil, err
	}

	if err := uc.git.Checkout(task.Branch); err != nil {
		return nil, fmt.Errorf("return to task branch: %w", err)
	}

	task.State = domain.StateApplied
	task.Touch(uc.clock.Now())
	if err := uc.tasks.Put(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.Name, "apply", fmt.Sprintf("changes staged on %s", task.BaseRef))
	return &ApplyTaskOutput{Task: task}, nil
}
