package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/domain"
	"github.com/codesnap-dev/codesnap/internal/testutil"
)

func testContainer(reg *testutil.MockRegistry, git *testutil.MockGit) *app.Container {
	return app.NewWithDeps(
		reg,
		reg,
		git,
		testutil.NewMockClassifier(),
		&testutil.MockLocker{},
		&testutil.MockClock{NowTime: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)},
		testutil.NopLogger{},
		domain.NewDefaultConfig(),
		nil,
	)
}

func execute(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(c, "test-version")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCommand_Help(t *testing.T) {
	out, err := execute(t, nil, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Task lifecycle:")
	assert.Contains(t, out, "merge")
	assert.Contains(t, out, "prune")
}

func TestNewRootCommand_Version(t *testing.T) {
	out, err := execute(t, nil, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test-version")
}

func TestListCommand_RendersTasks(t *testing.T) {
	reg := testutil.NewMockRegistry()
	reg.Tasks["login-fix"] = &domain.Task{
		Name:         "login-fix",
		Branch:       "cs/login-fix",
		BaseRef:      "main",
		Description:  "fix session expiry",
		State:        domain.StateActive,
		Commits:      2,
		LastModified: time.Date(2026, 8, 19, 9, 30, 0, 0, time.UTC),
	}
	reg.Tasks["old-work"] = &domain.Task{
		Name:         "old-work",
		Branch:       "cs/old-work",
		BaseRef:      "main",
		State:        domain.StatePruned,
		LastModified: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	reg.CurrentName = "login-fix"
	c := testContainer(reg, testutil.NewMockGit("cs/login-fix"))

	out, err := execute(t, c, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "login-fix")
	assert.Contains(t, out, "fix session expiry")
	assert.Contains(t, out, "old-work", "pruned records stay listed as archival entries")
}

func TestListCommand_Empty(t *testing.T) {
	c := testContainer(testutil.NewMockRegistry(), testutil.NewMockGit("main"))

	out, err := execute(t, c, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No tasks.")
}

func TestCommitCommand_PositionalMessage(t *testing.T) {
	reg := testutil.NewMockRegistry()
	reg.Tasks["login-fix"] = &domain.Task{
		Name:    "login-fix",
		Branch:  "cs/login-fix",
		BaseRef: "main",
		State:   domain.StateActive,
	}
	reg.CurrentName = "login-fix"
	git := testutil.NewMockGit("cs/login-fix")
	git.Changes = []domain.FileChange{{Path: "a.css", Kind: domain.ChangeModified}}
	c := testContainer(reg, git)

	out, err := execute(t, c, "commit", "add button")

	require.NoError(t, err)
	assert.Equal(t, []string{"add button"}, git.SnapshotMsgs)
	assert.Contains(t, out, "1 file(s) included")
}

func TestPruneCommand_InvalidDuration(t *testing.T) {
	c := testContainer(testutil.NewMockRegistry(), testutil.NewMockGit("main"))

	_, err := execute(t, c, "prune", "--older-than", "soon")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--older-than")
}

func TestPruneCommand_NothingToPrune(t *testing.T) {
	c := testContainer(testutil.NewMockRegistry(), testutil.NewMockGit("main"))

	out, err := execute(t, c, "prune")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to prune.")
}
