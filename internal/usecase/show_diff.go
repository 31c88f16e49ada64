package usecase

import (
	"context"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// ShowDiffInput contains the parameters for showing a task's diff.
type ShowDiffInput struct {
	Name string // Task name; empty means the current task
}

// ShowDiffOutput contains the patch text between base and branch tips.
type ShowDiffOutput struct {
	Task  *domain.Task
	Patch string // Empty when the trees are identical
}

// ShowDiff is the use case for rendering the cumulative diff of a task.
type ShowDiff struct {
	tasks domain.TaskRegistry
	git   domain.Git
}

// NewShowDiff creates a new ShowDiff use case.
func NewShowDiff(tasks domain.TaskRegistry, git domain.Git) *ShowDiff {
	return &ShowDiff{tasks: tasks, git: git}
}

// Execute returns the patch between the base tip and the task branch tip.
func (uc *ShowDiff) Execute(_ context.Context, in ShowDiffInput) (*ShowDiffOutput, error) {
	task, err := resolveTask(uc.tasks, in.Name)
	if err != nil {
		return nil, err
	}

	exists, err := uc.git.BranchExists(task.Branch)
	if err != nil {
		return nil, fmt.Errorf("check branch: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrBranchNotFound, task.Branch)
	}

	patch, err := uc.git.Diff(task.BaseRef, task.Branch)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	return &ShowDiffOutput{Task: task, Patch: patch}, nil
}
