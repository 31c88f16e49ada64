package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// CommitTaskInput contains the parameters for committing a snapshot.
type CommitTaskInput struct {
	Message string
}

// CommitTaskOutput contains the result of committing a snapshot.
type CommitTaskOutput struct {
	Task     *domain.Task
	Hash     string
	Included []string
	Ignored  []string
}

// CommitTask is the use case for recording a snapshot on the current task
// branch, classifying new files into the change set or the ignore list.
type CommitTask struct {
	tasks      domain.TaskRegistry
	git        domain.Git
	classifier domain.Classifier
	locker     domain.RepoLocker
	clock      domain.Clock
	logger     domain.Logger
	config     *domain.Config
}

// NewCommitTask creates a new CommitTask use case.
func NewCommitTask(
	tasks domain.TaskRegistry,
	git domain.Git,
	classifier domain.Classifier,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	config *domain.Config,
) *CommitTask {
	return &CommitTask{
		tasks:      tasks,
		git:        git,
		classifier: classifier,
		locker:     locker,
		clock:      clock,
		logger:     logger,
		config:     config,
	}
}

// Execute records a snapshot of the working tree on the current task branch.
//
// Classification rules:
//   - modified and deleted files are always part of the snapshot
//   - the ignore list itself is snapshotted, never classified
//   - paths already on the ignore list are skipped entirely
//   - each remaining new file is classified exactly once; IGNORE verdicts
//     extend .csignore, which is committed with the snapshot
//
// A classification failure aborts the whole commit with nothing written.
func (uc *CommitTask) Execute(ctx context.Context, in CommitTaskInput) (*CommitTaskOutput, error) {
	if in.Message == "" {
		return nil, domain.ErrEmptyMessage
	}

	release, err := uc.locker.Acquire(uc.config.LockTimeoutDuration())
	if err != nil {
		return nil, err
	}
	defer release()

	task, err := uc.currentTask()
	if err != nil {
		return nil, err
	}
	if task.State != domain.StateActive {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrTaskNotActive, task.Name, task.State)
	}

	changes, err := uc.git.ChangedFiles()
	if err != nil {
		return nil, fmt.Errorf("read changed files: %w", err)
	}
	if len(changes) == 0 {
		return nil, domain.ErrEmptyChangeSet
	}

	ignoreList, err := uc.git.ReadIgnoreList()
	if err != nil {
		return nil, fmt.Errorf("read ignore list: %w", err)
	}
	ignored := make(map[string]bool, len(ignoreList))
	for _, p := range ignoreList {
		ignored[p] = true
	}

	included, newlyIgnored, err := uc.classify(ctx, changes, ignored)
	if err != nil {
		return nil, err
	}
	if len(included) == 0 {
		return nil, domain.ErrEmptyChangeSet
	}

	snapshotPaths := included
	if len(newlyIgnored) > 0 {
		if err := uc.git.AppendIgnoreList(newlyIgnored); err != nil {
			return nil, fmt.Errorf("extend ignore list: %w", err)
		}
		if !slices.Contains(snapshotPaths, domain.IgnoreFileName) {
			snapshotPaths = append(snapshotPaths, domain.IgnoreFileName)
		}
	}

	hash, err := uc.git.SnapshotCommit(in.Message, snapshotPaths)
	if err != nil {
		return nil, fmt.Errorf("snapshot commit: %w", err)
	}

	task.Commits++
	task.Touch(uc.clock.Now())
	if err := uc.tasks.Put(task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	uc.logger.Info(task.Name, "commit",
		fmt.Sprintf("%s: %d included, %d ignored", hash, len(included), len(newlyIgnored)))
	return &CommitTaskOutput{
		Task:     task,
		Hash:     hash,
		Included: included,
		Ignored:  newlyIgnored,
	}, nil
}

// classify partitions the change set. Decisions are cached per path so the
// classifier sees each file at most once per commit.
func (uc *CommitTask) classify(
	ctx context.Context,
	changes []domain.FileChange,
	alreadyIgnored map[string]bool,
) (included, newlyIgnored []string, err error) {
	decisions := make(map[string]domain.Decision, len(changes))

	for _, change := range changes {
		// The ignore list itself is never classified: manual edits to it
		// are part of the change set.
		if change.Path == domain.IgnoreFileName {
			included = append(included, change.Path)
			continue
		}
		if alreadyIgnored[change.Path] {
			continue
		}
		if change.Kind != domain.ChangeNew {
			included = append(included, change.Path)
			continue
		}

		if _, seen := decisions[change.Path]; seen {
			continue
		}
		content, readErr := uc.git.ReadFile(change.Path)
		if readErr != nil {
			return nil, nil, fmt.Errorf("read new file: %w", readErr)
		}
		decision, err := uc.classifier.Classify(ctx, change.Path, content)
		if err != nil {
			return nil, nil, fmt.Errorf("classify %s: %w", change.Path, err)
		}
		decisions[change.Path] = decision

		if decision == domain.DecisionIgnore {
			newlyIgnored = append(newlyIgnored, change.Path)
		} else {
			included = append(included, change.Path)
		}
	}

	sort.Strings(included)
	sort.Strings(newlyIgnored)
	return included, newlyIgnored, nil
}

// currentTask resolves the current task and verifies the working tree is
// actually on its branch.
func (uc *CommitTask) currentTask() (*domain.Task, error) {
	name, err := uc.tasks.Current()
	if err != nil {
		return nil, fmt.Errorf("get current task: %w", err)
	}
	if name == "" {
		return nil, domain.ErrNoCurrentTask
	}

	task, err := uc.tasks.Get(name)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, name)
	}

	branch, err := uc.git.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("get current branch: %w", err)
	}
	if branch != task.Branch {
		return nil, fmt.Errorf("%w: HEAD is on %s, not %s", domain.ErrNoCurrentTask, branch, task.Branch)
	}
	return task, nil
}
