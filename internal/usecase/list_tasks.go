package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct{}

// ListTasksOutput contains the listed tasks.
type ListTasksOutput struct {
	Tasks   []*domain.Task
	Current string // Name of the current task, "" when on the main line
}

// ListTasks is the use case for listing task records.
type ListTasks struct {
	tasks domain.TaskRegistry
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRegistry) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute returns every task record, pruned archival ones included,
// ordered by LastModified descending with ties broken by name ascending.
func (uc *ListTasks) Execute(_ context.Context, _ ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.All()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		if !a.LastModified.Equal(b.LastModified) {
			if a.LastModified.After(b.LastModified) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	current, err := uc.tasks.Current()
	if err != nil {
		return nil, fmt.Errorf("get current task: %w", err)
	}

	return &ListTasksOutput{Tasks: tasks, Current: current}, nil
}
