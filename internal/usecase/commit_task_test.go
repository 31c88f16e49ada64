package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesnap-dev/codesnap/internal/domain"
	"github.com/codesnap-dev/codesnap/internal/testutil"
)

func activeTaskFixture(registry *testutil.MockRegistry, git *testutil.MockGit) {
	registry.Tasks["login-fix"] = &domain.Task{
		Name:     "login-fix",
		Branch:   "cs/login-fix",
		BaseRef:  "main",
		BaseHead: "base-head",
		State:    domain.StateActive,
	}
	registry.CurrentName = "login-fix"
	git.Branch = "cs/login-fix"
	git.Branches["cs/login-fix"] = "head"
}

func newCommitTask(registry *testutil.MockRegistry, git *testutil.MockGit, classifier *testutil.MockClassifier) *CommitTask {
	return NewCommitTask(registry, git, classifier, &testutil.MockLocker{},
		testClock(), testutil.NopLogger{}, domain.NewDefaultConfig())
}

func TestCommitTask_Execute(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Changes = []domain.FileChange{
		{Path: "auth/login.go", Kind: domain.ChangeModified},
		{Path: "auth/session.go", Kind: domain.ChangeNew},
		{Path: "debug.log", Kind: domain.ChangeNew},
		{Path: "old.go", Kind: domain.ChangeDeleted},
	}
	classifier := testutil.NewMockClassifier()
	classifier.Decisions["debug.log"] = domain.DecisionIgnore

	uc := newCommitTask(registry, git, classifier)
	out, err := uc.Execute(context.Background(), CommitTaskInput{Message: "fix session handling"})
	require.NoError(t, err)

	assert.Equal(t, []string{"auth/login.go", "auth/session.go", "old.go"}, out.Included)
	assert.Equal(t, []string{"debug.log"}, out.Ignored)
	assert.Equal(t, "deadbeef", out.Hash)
	assert.Equal(t, 1, out.Task.Commits)

	// Only new files reach the classifier.
	assert.ElementsMatch(t, []string{"auth/session.go", "debug.log"}, classifier.Calls)

	// Ignore list extended and committed with the snapshot.
	assert.Equal(t, []string{"debug.log"}, git.IgnoreAppended)
	require.Len(t, git.Snapshotted, 1)
	assert.Contains(t, git.Snapshotted[0], domain.IgnoreFileName)
	assert.Equal(t, "fix session handling", git.SnapshotMsgs[0])

	// Registry updated.
	assert.Equal(t, 1, registry.Tasks["login-fix"].Commits)
}

func TestCommitTask_Execute_IgnoredPathsSkipClassification(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.IgnoreList = []string{"debug.log"}
	git.Changes = []domain.FileChange{
		{Path: "debug.log", Kind: domain.ChangeNew},
		{Path: "main.go", Kind: domain.ChangeModified},
	}
	classifier := testutil.NewMockClassifier()

	uc := newCommitTask(registry, git, classifier)
	out, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.go"}, out.Included)
	assert.Empty(t, out.Ignored)
	assert.Empty(t, classifier.Calls)
	assert.Empty(t, git.IgnoreAppended)
}

func TestCommitTask_Execute_ClassifierEachFileOnce(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	// The same path reported twice must classify once.
	git.Changes = []domain.FileChange{
		{Path: "gen.go", Kind: domain.ChangeNew},
		{Path: "gen.go", Kind: domain.ChangeNew},
	}
	classifier := testutil.NewMockClassifier()

	uc := newCommitTask(registry, git, classifier)
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gen.go"}, classifier.Calls)
}

func TestCommitTask_Execute_ClassificationUnavailableAborts(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Changes = []domain.FileChange{
		{Path: "a.go", Kind: domain.ChangeModified},
		{Path: "b.go", Kind: domain.ChangeNew},
	}
	classifier := testutil.NewMockClassifier()
	classifier.Err = domain.ErrClassificationUnavailable

	uc := newCommitTask(registry, git, classifier)
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrClassificationUnavailable))

	// Nothing written: no snapshot, no ignore append, counter untouched.
	assert.Empty(t, git.Snapshotted)
	assert.Empty(t, git.IgnoreAppended)
	assert.Equal(t, 0, registry.Tasks["login-fix"].Commits)
}

func TestCommitTask_Execute_EmptyMessage(t *testing.T) {
	uc := newCommitTask(testutil.NewMockRegistry(), testutil.NewMockGit("main"), testutil.NewMockClassifier())
	_, err := uc.Execute(context.Background(), CommitTaskInput{})
	assert.True(t, errors.Is(err, domain.ErrEmptyMessage))
}

func TestCommitTask_Execute_EditedIgnoreListCommitted(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Changes = []domain.FileChange{
		{Path: domain.IgnoreFileName, Kind: domain.ChangeModified},
		{Path: "main.go", Kind: domain.ChangeModified},
	}
	classifier := testutil.NewMockClassifier()

	uc := newCommitTask(registry, git, classifier)
	out, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	require.NoError(t, err)

	// A hand-edited ignore list is part of the change set, not classified.
	assert.Equal(t, []string{domain.IgnoreFileName, "main.go"}, out.Included)
	assert.Empty(t, classifier.Calls)
	require.Len(t, git.Snapshotted, 1)
	assert.Contains(t, git.Snapshotted[0], domain.IgnoreFileName)
}

func TestCommitTask_Execute_EditedIgnoreListSnapshottedOnce(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Changes = []domain.FileChange{
		{Path: domain.IgnoreFileName, Kind: domain.ChangeModified},
		{Path: "debug.log", Kind: domain.ChangeNew},
		{Path: "main.go", Kind: domain.ChangeModified},
	}
	classifier := testutil.NewMockClassifier()
	classifier.Decisions["debug.log"] = domain.DecisionIgnore

	uc := newCommitTask(registry, git, classifier)
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	require.NoError(t, err)

	require.Len(t, git.Snapshotted, 1)
	count := 0
	for _, path := range git.Snapshotted[0] {
		if path == domain.IgnoreFileName {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCommitTask_Execute_EmptyChangeSet(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)

	uc := newCommitTask(registry, git, testutil.NewMockClassifier())
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrEmptyChangeSet))
}

func TestCommitTask_Execute_AllIgnoredIsEmptyChangeSet(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Changes = []domain.FileChange{{Path: "junk.tmp", Kind: domain.ChangeNew}}
	classifier := testutil.NewMockClassifier()
	classifier.Default = domain.DecisionIgnore

	uc := newCommitTask(registry, git, classifier)
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrEmptyChangeSet))
	// No dangling ignore-list edit when the commit does not happen.
	assert.Empty(t, git.IgnoreAppended)
}

func TestCommitTask_Execute_NoCurrentTask(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")

	uc := newCommitTask(registry, git, testutil.NewMockClassifier())
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrNoCurrentTask))
}

func TestCommitTask_Execute_OffTaskBranch(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Branch = "main" // drifted off the task branch

	uc := newCommitTask(registry, git, testutil.NewMockClassifier())
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrNoCurrentTask))
}

func TestCommitTask_Execute_TaskNotActive(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	registry.Tasks["login-fix"].State = domain.StateMerged

	uc := newCommitTask(registry, git, testutil.NewMockClassifier())
	_, err := uc.Execute(context.Background(), CommitTaskInput{Message: "m"})
	assert.True(t, errors.Is(err, domain.ErrTaskNotActive))
}
