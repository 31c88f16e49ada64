// Package git adapts the go-git backend to the lifecycle engine's needs.
// Read paths (refs, log, diff, status) use go-git natively; merge
// operations shell out to the git CLI because go-git does not implement
// a three-way merge.
package git

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// Client provides git operations for a single repository.
type Client struct {
	repo     *gogit.Repository
	repoRoot string // Working tree root
	gitDir   string // .git directory (resolved through worktree pointer files)
}

// NewClient opens the repository containing dir.
func NewClient(dir string) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	gitDir, err := resolveGitDir(root)
	if err != nil {
		return nil, err
	}

	return &Client{repo: repo, repoRoot: root, gitDir: gitDir}, nil
}

// RepoRoot returns the working tree root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// Repository exposes the underlying go-git handle for collaborators that
// store state in the same repository (the task registry).
func (c *Client) Repository() *gogit.Repository {
	return c.repo
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", head.Hash())
	}
	return head.Name().Short(), nil
}

// BranchExists checks if a local branch exists.
func (c *Client) BranchExists(branch string) (bool, error) {
	_, err := c.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check branch %s: %w", branch, err)
}

// Head returns the tip commit hash of a branch.
func (c *Client) Head(branch string) (string, error) {
	ref, err := c.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", domain.ErrBranchNotFound
		}
		return "", fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	return ref.Hash().String(), nil
}

// CreateBranch creates a branch at fromRef and checks it out.
func (c *Client) CreateBranch(branch, fromRef string) error {
	hash, err := c.Head(fromRef)
	if err != nil {
		return err
	}
	wt, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Hash:   plumbing.NewHash(hash),
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
	if err != nil {
		return fmt.Errorf("create branch %s: %w", branch, err)
	}
	return nil
}

// Checkout switches the working tree to a branch.
func (c *Client) Checkout(branch string) error {
	wt, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		return fmt.Errorf("checkout %s: %w", branch, err)
	}
	return nil
}

// HasUncommittedChanges checks for staged or unstaged changes.
func (c *Client) HasUncommittedChanges() (bool, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("read status: %w", err)
	}
	return !status.IsClean(), nil
}

// ChangedFiles lists new, modified and deleted paths in the working tree.
func (c *Client) ChangedFiles() ([]domain.FileChange, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}

	var changes []domain.FileChange
	for path, st := range status {
		kind, ok := changeKind(st)
		if !ok {
			continue
		}
		changes = append(changes, domain.FileChange{Path: path, Kind: kind})
	}
	return changes, nil
}

// changeKind maps a go-git file status to a domain change kind.
func changeKind(st *gogit.FileStatus) (domain.ChangeKind, bool) {
	code := st.Worktree
	if code == gogit.Unmodified {
		code = st.Staging
	}
	switch code {
	case gogit.Untracked, gogit.Added:
		return domain.ChangeNew, true
	case gogit.Modified, gogit.Renamed, gogit.Copied, gogit.UpdatedButUnmerged:
		return domain.ChangeModified, true
	case gogit.Deleted:
		return domain.ChangeDeleted, true
	default:
		return "", false
	}
}

// SnapshotCommit stages the given paths and commits them.
func (c *Client) SnapshotCommit(message string, paths []string) (string, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	for _, path := range paths {
		if _, statErr := os.Stat(filepath.Join(c.repoRoot, path)); os.IsNotExist(statErr) {
			if _, rmErr := wt.Remove(path); rmErr != nil {
				return "", fmt.Errorf("stage deletion %s: %w", path, rmErr)
			}
			continue
		}
		if _, addErr := wt.Add(path); addErr != nil {
			return "", fmt.Errorf("stage %s: %w", path, addErr)
		}
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: c.signature()})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// signature builds the commit author from the repository config, falling
// back to a fixed identity when none is configured.
func (c *Client) signature() *object.Signature {
	name, email := "codesnap", "codesnap@localhost"
	if cfg, err := c.repo.ConfigScoped(gitcfg.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

// ListCommits returns the commits on branch down to, but excluding, the
// baseHead commit, most recent first. The walk must stop at the commit the
// branch was created from, not the base branch's current tip: once the base
// advances past the branch point its tip is no longer in the branch's
// ancestry and the walk would leak pre-branch history.
func (c *Client) ListCommits(branch, baseHead string) ([]domain.CommitRecord, error) {
	branchHash, err := c.Head(branch)
	if err != nil {
		return nil, err
	}

	iter, err := c.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(branchHash)})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", branch, err)
	}
	defer iter.Close()

	var records []domain.CommitRecord
	for {
		commit, iterErr := iter.Next()
		if iterErr == io.EOF {
			break
		}
		if iterErr != nil {
			return nil, fmt.Errorf("iterate commits: %w", iterErr)
		}
		if commit.Hash.String() == baseHead {
			break
		}
		records = append(records, domain.CommitRecord{
			Hash:    commit.Hash.String(),
			Message: strings.TrimRight(commit.Message, "\n"),
			Author:  commit.Author.Name,
			When:    commit.Author.When,
		})
	}
	return records, nil
}

// Diff returns the patch between the tips of base and branch. The result
// is empty when the trees are identical.
func (c *Client) Diff(base, branch string) (string, error) {
	baseTree, err := c.branchTree(base)
	if err != nil {
		return "", err
	}
	branchTree, err := c.branchTree(branch)
	if err != nil {
		return "", err
	}

	changes, err := object.DiffTree(baseTree, branchTree)
	if err != nil {
		return "", fmt.Errorf("diff trees: %w", err)
	}
	if len(changes) == 0 {
		return "", nil
	}
	patch, err := changes.Patch()
	if err != nil {
		return "", fmt.Errorf("render patch: %w", err)
	}
	return patch.String(), nil
}

// branchTree resolves the tree object at a branch tip.
func (c *Client) branchTree(branch string) (*object.Tree, error) {
	hash, err := c.Head(branch)
	if err != nil {
		return nil, err
	}
	commit, err := c.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("load commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", hash, err)
	}
	return tree, nil
}

// Merge integrates source into the currently checked-out branch.
func (c *Client) Merge(source string, mode domain.MergeMode, message string) error {
	switch mode {
	case domain.MergeWorkingTree:
		return c.runMerge("merge", "--no-commit", "--no-ff", source)
	case domain.MergeHistory:
		return c.runMerge("merge", "--no-ff", "-m", message, source)
	case domain.MergeSquash:
		if err := c.runMerge("merge", "--squash", source); err != nil {
			return err
		}
		return c.runGit("commit", "-m", message)
	default:
		return fmt.Errorf("unknown merge mode %q", mode)
	}
}

// runMerge runs a git merge, translating conflict output to ErrMergeConflict.
func (c *Client) runMerge(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if strings.Contains(string(out), "CONFLICT") || strings.Contains(string(out), "Automatic merge failed") {
		return fmt.Errorf("%w: %s", domain.ErrMergeConflict, strings.TrimSpace(string(out)))
	}
	return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, string(out))
}

// AbortMerge aborts an in-progress merge.
func (c *Client) AbortMerge() error {
	return c.runGit("merge", "--abort")
}

// DiscardChanges resets the working tree to HEAD and removes untracked files.
func (c *Client) DiscardChanges() error {
	if err := c.runGit("reset", "--hard", "HEAD"); err != nil {
		return err
	}
	return c.runGit("clean", "-fd")
}

// runGit runs a git command in the repository root.
func (c *Client) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, string(out))
	}
	return nil
}

// DeleteBranch force-deletes a branch.
func (c *Client) DeleteBranch(branch string) error {
	refName := plumbing.NewBranchReferenceName(branch)
	if _, err := c.repo.Reference(refName, true); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return domain.ErrBranchNotFound
		}
		return fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	if err := c.repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("delete branch %s: %w", branch, err)
	}
	// Drop tracking config if present; missing config is not an error.
	_ = c.repo.DeleteBranch(branch)
	return nil
}

// ReadFile reads a working tree file addressed relative to the repo root.
func (c *Client) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(c.repoRoot, path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadIgnoreList returns the paths recorded in the branch-local ignore list.
func (c *Client) ReadIgnoreList() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(c.repoRoot, domain.IgnoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ignore list: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	return paths, nil
}

// AppendIgnoreList appends paths to the branch-local ignore list.
func (c *Client) AppendIgnoreList(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(c.repoRoot, domain.IgnoreFileName),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // tracked repository file
	if err != nil {
		return fmt.Errorf("open ignore list: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, path := range paths {
		if _, err := fmt.Fprintln(f, path); err != nil {
			return fmt.Errorf("append ignore list: %w", err)
		}
	}
	return nil
}

// Ensure Client implements domain.Git.
var _ domain.Git = (*Client)(nil)

// resolveGitDir locates the .git directory for a working tree root. Linked
// worktrees keep a pointer file instead of a directory.
func resolveGitDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", domain.ErrNotGitRepository
	}
	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("read .git pointer: %w", err)
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir: "
	if !strings.HasPrefix(line, prefix) {
		return "", domain.ErrNotGitRepository
	}
	gitDir := strings.TrimPrefix(line, prefix)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}
	return filepath.Clean(gitDir), nil
}
