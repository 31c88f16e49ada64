package usecase

import (
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// resolveTask finds the task named by the caller, falling back to the
// current task when no name is given.
func resolveTask(tasks domain.TaskRegistry, name string) (*domain.Task, error) {
	if name == "" {
		current, err := tasks.Current()
		if err != nil {
			return nil, fmt.Errorf("get current task: %w", err)
		}
		if current == "" {
			return nil, domain.ErrNoCurrentTask
		}
		name = current
	}

	task, err := tasks.Get(name)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, name)
	}
	return task, nil
}
