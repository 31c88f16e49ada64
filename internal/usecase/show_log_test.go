package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesnap-dev/codesnap/internal/domain"
	"github.com/codesnap-dev/codesnap/internal/testutil"
)

func TestShowLog_Execute(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.Commits = []domain.CommitRecord{
		{Hash: "bbb", Message: "second", When: time.Now()},
		{Hash: "aaa", Message: "first", When: time.Now().Add(-time.Hour)},
	}

	uc := NewShowLog(registry, git)
	out, err := uc.Execute(context.Background(), ShowLogInput{})
	require.NoError(t, err)
	require.Len(t, out.Commits, 2)
	assert.Equal(t, "second", out.Commits[0].Message)
	// The walk stops at the recorded branch point, not the base branch tip,
	// so commits landed on main after the task started never leak in.
	assert.Equal(t, "cs/login-fix", git.LogBranch)
	assert.Equal(t, "base-head", git.LogBase)
}

func TestShowLog_Execute_BranchGone(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	registry.Tasks["done"] = &domain.Task{Name: "done", Branch: "cs/done", BaseRef: "main", State: domain.StateAborted}

	uc := NewShowLog(registry, git)
	out, err := uc.Execute(context.Background(), ShowLogInput{Name: "done"})
	require.NoError(t, err)
	assert.Empty(t, out.Commits)
}

func TestShowDiff_Execute(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	activeTaskFixture(registry, git)
	git.DiffText = "diff --git a/x b/x\n+new line\n"

	uc := NewShowDiff(registry, git)
	out, err := uc.Execute(context.Background(), ShowDiffInput{})
	require.NoError(t, err)
	assert.Contains(t, out.Patch, "+new line")
}

func TestShowDiff_Execute_BranchGone(t *testing.T) {
	registry := testutil.NewMockRegistry()
	git := testutil.NewMockGit("main")
	registry.Tasks["done"] = &domain.Task{Name: "done", Branch: "cs/done", BaseRef: "main", State: domain.StateAborted}

	uc := NewShowDiff(registry, git)
	_, err := uc.Execute(context.Background(), ShowDiffInput{Name: "done"})
	assert.True(t, errors.Is(err, domain.ErrBranchNotFound))
}

func TestShowDiff_Execute_NoCurrentTask(t *testing.T) {
	uc := NewShowDiff(testutil.NewMockRegistry(), testutil.NewMockGit("main"))
	_, err := uc.Execute(context.Background(), ShowDiffInput{})
	assert.True(t, errors.Is(err, domain.ErrNoCurrentTask))
}
