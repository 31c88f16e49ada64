package usecase

import (
	"context"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// ShowLogInput contains the parameters for showing a task's commits.
type ShowLogInput struct {
	Name string // Task name; empty means the current task
}

// ShowLogOutput contains the task's commits, most recent first.
type ShowLogOutput struct {
	Task    *domain.Task
	Commits []domain.CommitRecord
}

// ShowLog is the use case for listing the snapshots on a task branch.
type ShowLog struct {
	tasks domain.TaskRegistry
	git   domain.Git
}

// NewShowLog creates a new ShowLog use case.
func NewShowLog(tasks domain.TaskRegistry, git domain.Git) *ShowLog {
	return &ShowLog{tasks: tasks, git: git}
}

// Execute lists the commits the task branch has over its base. Tasks whose
// branch no longer exists (aborted, pruned) report no commits.
func (uc *ShowLog) Execute(_ context.Context, in ShowLogInput) (*ShowLogOutput, error) {
	task, err := resolveTask(uc.tasks, in.Name)
	if err != nil {
		return nil, err
	}

	exists, err := uc.git.BranchExists(task.Branch)
	if err != nil {
		return nil, fmt.Errorf("check branch: %w", err)
	}
	if !exists {
		return &ShowLogOutput{Task: task}, nil
	}

	// Walk down to the commit the branch was created from. Using the base
	// branch tip instead would leak pre-branch history once the base has
	// advanced past the branch point.
	commits, err := uc.git.ListCommits(task.Branch, task.BaseHead)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	return &ShowLogOutput{Task: task, Commits: commits}, nil
}
