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

func newMergeTask(registry *testutil.MockRegistry, git *testutil.MockGit) *MergeTask {
	return NewMergeTask(registry, git, &testutil.MockLocker{},
		testClock(), testutil.NopLogger{}, domain.NewDefaultConfig())
}

func TestMergeTask_Execute(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)

	uc := newMergeTask(registry, git)
	out, err := uc.Execute(context.Background(), MergeTaskInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.StateMerged, out.Task.State)
	assert.Equal(t, []string{"main"}, git.CheckedOut)
	assert.Equal(t, []domain.MergeMode{domain.MergeHistory}, git.MergeModes)
	assert.Equal(t, []string{"Merge task 'login-fix'"}, git.MergeMessages)

	// HEAD stays on main, branch retained, current cleared.
	assert.Equal(t, "main", git.Branch)
	assert.Empty(t, git.Deleted)
	assert.Empty(t, registry.CurrentName)
}

func TestMergeTask_Execute_Squash(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)

	uc := newMergeTask(registry, git)
	_, err := uc.Execute(context.Background(), MergeTaskInput{Squash: true})
	require.NoError(t, err)
	assert.Equal(t, []domain.MergeMode{domain.MergeSquash}, git.MergeModes)
}

func TestMergeTask_Execute_SquashFromTaskConfig(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	registry.Tasks["login-fix"].SquashOnMerge = true

	uc := newMergeTask(registry, git)
	_, err := uc.Execute(context.Background(), MergeTaskInput{})
	require.NoError(t, err)
	assert.Equal(t, []domain.MergeMode{domain.MergeSquash}, git.MergeModes)
}

func TestMergeTask_Execute_FromApplied(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	registry.Tasks["login-fix"].State = domain.StateApplied

	uc := newMergeTask(registry, git)
	out, err := uc.Execute(context.Background(), MergeTaskInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.StateMerged, out.Task.State)
}

func TestMergeTask_Execute_Conflict(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.MergeErr = domain.ErrMergeConflict

	uc := newMergeTask(registry, git)
	_, err := uc.Execute(context.Background(), MergeTaskInput{})
	assert.True(t, errors.Is(err, domain.ErrMergeConflict))

	// Rolled back to the pre-operation state: merge aborted, HEAD back on
	// the task branch, task still active and still current.
	assert.Equal(t, 1, git.Aborted)
	assert.Equal(t, "cs/login-fix", git.Branch)
	assert.Equal(t, domain.StateActive, registry.Tasks["login-fix"].State)
	assert.Equal(t, "login-fix", registry.CurrentName)
}

func TestMergeTask_Execute_BackendErrorReturnsToBranch(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.MergeErr = errors.New("object store corrupt")

	uc := newMergeTask(registry, git)
	_, err := uc.Execute(context.Background(), MergeTaskInput{})
	require.Error(t, err)

	// No merge to abort, but HEAD must not be left on the base branch.
	assert.Equal(t, 0, git.Aborted)
	assert.Equal(t, "cs/login-fix", git.Branch)
	assert.Equal(t, domain.StateActive, registry.Tasks["login-fix"].State)
}

func TestMergeTask_Execute_ClosedStates(t *testing.T) {
	for _, state := range []domain.State{domain.StateMerged, domain.StateAborted, domain.StatePruned} {
		registry := testutil.NewMockRegistry()
		git := testutil.NewMockGit("main")
		activeTaskFixture(registry, git)
		registry.Tasks["login-fix"].State = state

		uc := newMergeTask(registry, git)
		_, err := uc.Execute(context.Background(), MergeTaskInput{})
		assert.True(t, errors.Is(err, domain.ErrTaskNotActive), "state %s", state)
	}
}
