package domain

import "errors"

// Domain errors.
var (
	ErrNameConflict              = errors.New("task name already in use")
	ErrTaskNotFound              = errors.New("task not found")
	ErrNoCurrentTask             = errors.New("not on a task branch")
	ErrTaskNotActive             = errors.New("task is not active")
	ErrEmptyMessage              = errors.New("message cannot be empty")
	ErrEmptyChangeSet            = errors.New("no changes to commit")
	ErrClassificationUnavailable = errors.New("classification service unavailable")
	ErrMergeConflict             = errors.New("merge conflict exists")
	ErrBusy                      = errors.New("repository is busy (another operation in progress)")
	ErrUncommittedChanges        = errors.New("uncommitted changes exist")
	ErrBranchNotFound            = errors.New("branch not found")
	ErrAlreadyInitialized        = errors.New("codesnap already initialized")
	ErrNotInitialized            = errors.New("codesnap not initialized (run 'cs init' first)")
	ErrNotGitRepository          = errors.New("not a git repository (or any of the parent directories)")
	ErrInvalidTaskName           = errors.New("invalid task name")
)
