package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// MergeTaskInput contains the parameters for merging a task.
type MergeTaskInput struct {
	Name   string // Task name; empty means the current task
	Squash bool   // Override: collapse the branch into one commit
}

// MergeTaskOutput contains the result of merging a task.
type MergeTaskOutput struct {
	Task *domain.Task
}

// MergeTask is the use case for integrating a task branch into its base
// branch permanently.
type MergeTask struct {
	tasks  domain.TaskRegistry
	git    domain.Git
	locker domain.RepoLocker
	clock  domain.Clock
	logger domain.Logger
	config *domain.Config
}

// NewMergeTask creates a new MergeTask use case.
func NewMergeTask(
	tasks domain.TaskRegistry,
	git domain.Git,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *MergeTask {
	return &MergeTask{
		tasks:  tasks,
		git:    git,
		locker: locker,
		clock:  clock,
		logger: logger,
		config: config,
	}
}

// Execute merges the task branch into its base. Merging is allowed from
// active or applied; a merge after apply supersedes whatever apply staged.
// HEAD ends on the base branch, the task branch is retained for audit and
// the current pointer is cleared.
func (uc *MergeTask) Execute(_ context.Context, in MergeTaskInput) (*MergeTaskOutput, error) {
	release, err := uc.locker.Acquire(uc.config.LockTimeoutDuration())
	if err != nil {
		return nil, err
	}
	defer release()

	task, err := resolveTask(uc.tasks, in.Name)
	if err != nil {
		return nil, err
	}
	if !task.State.CanTransitionTo(domain.StateMerged) {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrTaskNotActive, task.Name, task.State)
	}

	if err := uc.git.Checkout(task.BaseRef); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", task.BaseRef, err)
	}

	mode := domain.MergeHistory
	if in.Squash || task.SquashOnMerge {
		mode = domain.MergeSquash
	}
	message := fmt.Sprintf("Merge task '%s'", task.Name)
	if err := uc.git.Merge(task.Branch, mode, message); err != nil {
		if errors.Is(err, domain.ErrMergeConflict) {
			uc.logger.Warn(task.Name, "merge", "merge conflict, rolling back")
			if abortErr := uc.git.AbortMerge(); abortErr != nil {
				return nil, fmt.Errorf("abort conflicted merge: %w", abortErr)
			}
		}
		// The task stays current and checked out, state untouched.
		if coErr := uc.git.Checkout(task.Branch); coErr != nil {
			return nil, fmt.Errorf("return to task branch: %w", coErr)
		}
		return nil, err
	}

	task.State = domain.StateMerged
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

	uc.logger.Info(task.Name, "merge", fmt.Sprintf("merged into %s (%s)", task.BaseRef, mode))
	return &MergeTaskOutput{Task: task}, nil
}
