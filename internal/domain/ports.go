package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the task registry.
type StoreInitializer interface {
	// Initialize creates the registry if it doesn't exist.
	Initialize() error

	// IsInitialized checks if the registry has been initialized.
	IsInitialized() bool
}

// TaskRegistry manages task persistence. Implementations must expose each
// task record atomically: a reader never observes a task mid-transition.
type TaskRegistry interface {
	// Get retrieves a task by name. Returns nil if not found.
	Get(name string) (*Task, error)

	// Put creates or updates a task record.
	Put(task *Task) error

	// All retrieves every task, including pruned archival records.
	All() ([]*Task, error)

	// Current returns the name of the checked-out task, or "" when the
	// main line is checked out.
	Current() (string, error)

	// SetCurrent records the checked-out task. An empty name clears it.
	SetCurrent(name string) error
}

// ChangeKind classifies a working-tree change.
type ChangeKind string

const (
	ChangeNew      ChangeKind = "new"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// FileChange is one changed path in the working tree.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// MergeMode selects how a branch is integrated into its target.
type MergeMode string

const (
	// MergeHistory records the branch history on the target with a merge commit.
	MergeHistory MergeMode = "history"
	// MergeSquash collapses the branch into a single commit on the target.
	MergeSquash MergeMode = "squash"
	// MergeWorkingTree stages the branch content on the target without committing.
	MergeWorkingTree MergeMode = "working-tree"
)

// Git wraps the version-control backend primitives the lifecycle engine
// needs. Every method may fail with a backend error; the engine never
// inspects backend internals beyond these contracts.
type Git interface {
	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch() (string, error)

	// BranchExists checks if a local branch exists.
	BranchExists(branch string) (bool, error)

	// Head returns the tip commit hash of a branch.
	Head(branch string) (string, error)

	// CreateBranch creates a branch at fromRef and checks it out.
	CreateBranch(branch, fromRef string) error

	// Checkout switches the working tree to a branch.
	Checkout(branch string) error

	// HasUncommittedChanges checks for staged or unstaged changes.
	HasUncommittedChanges() (bool, error)

	// ChangedFiles lists new, modified and deleted paths in the working tree.
	ChangedFiles() ([]FileChange, error)

	// SnapshotCommit stages the given paths and commits them, returning
	// the new commit hash.
	SnapshotCommit(message string, paths []string) (string, error)

	// ListCommits returns the commits on branch down to, but excluding,
	// the baseHead commit, most recent first.
	ListCommits(branch, baseHead string) ([]CommitRecord, error)

	// Diff returns the textual difference between the tips of two branches.
	Diff(base, branch string) (string, error)

	// Merge integrates source into the currently checked-out branch.
	// The message is used for history and squash merge commits.
	Merge(source string, mode MergeMode, message string) error

	// AbortMerge aborts an in-progress merge.
	AbortMerge() error

	// DiscardChanges resets the working tree to HEAD and removes
	// untracked files.
	DiscardChanges() error

	// DeleteBranch force-deletes a branch.
	DeleteBranch(branch string) error

	// ReadFile reads a file from the working tree, addressed relative to
	// the repository root.
	ReadFile(path string) ([]byte, error)

	// ReadIgnoreList returns the paths recorded in the branch-local
	// ignore list, or an empty slice when the list does not exist.
	ReadIgnoreList() ([]string, error)

	// AppendIgnoreList appends paths to the branch-local ignore list,
	// creating it if needed.
	AppendIgnoreList(paths []string) error
}

// Decision is the verdict of the classification service for one file.
type Decision string

const (
	DecisionInclude Decision = "include"
	DecisionIgnore  Decision = "ignore"
)

// Classifier decides whether a new file belongs in the change set or the
// ignore list. The call may be slow or remote; callers must not invoke it
// more than once per file within one commit operation.
type Classifier interface {
	Classify(ctx context.Context, path string, content []byte) (Decision, error)
}

// RepoLocker provides the repository-level exclusive lock held for the
// duration of state-mutating operations.
type RepoLocker interface {
	// Acquire takes the lock, waiting at most timeout. It fails with
	// ErrBusy when the lock cannot be obtained in time. The returned
	// function releases the lock and is safe to call exactly once.
	Acquire(timeout time.Duration) (release func(), err error)
}

// Logger writes structured operation logs.
type Logger interface {
	Debug(task, category, msg string)
	Info(task, category, msg string)
	Warn(task, category, msg string)
	Error(task, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global + defaults).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigWriter seeds repository-scoped configuration.
type ConfigWriter interface {
	// WriteRepoDefault writes the default repo config file if absent.
	WriteRepoDefault() error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
