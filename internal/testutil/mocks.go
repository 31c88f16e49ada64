// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockRegistry is an in-memory test double for domain.TaskRegistry and
// domain.StoreInitializer.
type MockRegistry struct {
	Tasks       map[string]*domain.Task
	CurrentName string
	Initialized bool
	GetErr      error
	PutErr      error
}

// NewMockRegistry creates a MockRegistry with initialized maps.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{Tasks: make(map[string]*domain.Task), Initialized: true}
}

// Get retrieves a task by name.
func (m *MockRegistry) Get(name string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[name]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

// Put creates or updates a task record.
func (m *MockRegistry) Put(task *domain.Task) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	copied := *task
	m.Tasks[task.Name] = &copied
	return nil
}

// All returns every task.
func (m *MockRegistry) All() ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		copied := *t
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

// Current returns the recorded current task name.
func (m *MockRegistry) Current() (string, error) {
	return m.CurrentName, nil
}

// SetCurrent records the current task name.
func (m *MockRegistry) SetCurrent(name string) error {
	m.CurrentName = name
	return nil
}

// Initialize marks the registry initialized.
func (m *MockRegistry) Initialize() error {
	m.Initialized = true
	return nil
}

// IsInitialized reports whether Initialize was called.
func (m *MockRegistry) IsInitialized() bool {
	return m.Initialized
}

// MockGit is a configurable test double for domain.Git.
type MockGit struct {
	Branch       string
	Branches     map[string]string // branch -> head hash
	Files        map[string][]byte // path -> working tree content
	Dirty        bool
	Changes      []domain.FileChange
	Commits      []domain.CommitRecord
	DiffText     string
	IgnoreList   []string
	SnapshotHash string
	MergeErr     error
	CheckoutErr  error
	SnapshotErr  error
	CreateErr    error

	CheckedOut     []string
	Created        []string
	Deleted        []string
	Merged         []string
	MergeModes     []domain.MergeMode
	MergeMessages  []string
	Aborted        int
	Discarded      int
	Snapshotted    [][]string
	SnapshotMsgs   []string
	IgnoreAppended []string
	LogBranch      string
	LogBase        string
}

// NewMockGit creates a MockGit positioned on branch with a known head.
func NewMockGit(branch string) *MockGit {
	return &MockGit{
		Branch:       branch,
		Branches:     map[string]string{branch: "head-" + branch},
		SnapshotHash: "deadbeef",
	}
}

func (m *MockGit) CurrentBranch() (string, error) {
	return m.Branch, nil
}

func (m *MockGit) BranchExists(branch string) (bool, error) {
	_, ok := m.Branches[branch]
	return ok, nil
}

func (m *MockGit) Head(branch string) (string, error) {
	hash, ok := m.Branches[branch]
	if !ok {
		return "", domain.ErrBranchNotFound
	}
	return hash, nil
}

func (m *MockGit) CreateBranch(branch, fromRef string) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Branches[branch] = m.Branches[fromRef]
	m.Created = append(m.Created, branch)
	m.Branch = branch
	return nil
}

func (m *MockGit) Checkout(branch string) error {
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}
	m.CheckedOut = append(m.CheckedOut, branch)
	m.Branch = branch
	return nil
}

func (m *MockGit) HasUncommittedChanges() (bool, error) {
	return m.Dirty, nil
}

func (m *MockGit) ChangedFiles() ([]domain.FileChange, error) {
	return m.Changes, nil
}

func (m *MockGit) SnapshotCommit(message string, paths []string) (string, error) {
	if m.SnapshotErr != nil {
		return "", m.SnapshotErr
	}
	m.SnapshotMsgs = append(m.SnapshotMsgs, message)
	m.Snapshotted = append(m.Snapshotted, paths)
	m.Dirty = false
	return m.SnapshotHash, nil
}

func (m *MockGit) ListCommits(branch, baseHead string) ([]domain.CommitRecord, error) {
	m.LogBranch = branch
	m.LogBase = baseHead
	return m.Commits, nil
}

func (m *MockGit) Diff(_, _ string) (string, error) {
	return m.DiffText, nil
}

func (m *MockGit) Merge(source string, mode domain.MergeMode, message string) error {
	if m.MergeErr != nil {
		return m.MergeErr
	}
	m.Merged = append(m.Merged, source)
	m.MergeModes = append(m.MergeModes, mode)
	m.MergeMessages = append(m.MergeMessages, message)
	return nil
}

func (m *MockGit) AbortMerge() error {
	m.Aborted++
	return nil
}

func (m *MockGit) DiscardChanges() error {
	m.Discarded++
	m.Dirty = false
	return nil
}

func (m *MockGit) DeleteBranch(branch string) error {
	if _, ok := m.Branches[branch]; !ok {
		return domain.ErrBranchNotFound
	}
	delete(m.Branches, branch)
	m.Deleted = append(m.Deleted, branch)
	return nil
}

func (m *MockGit) ReadFile(path string) ([]byte, error) {
	if m.Files == nil {
		return nil, nil
	}
	return m.Files[path], nil
}

func (m *MockGit) ReadIgnoreList() ([]string, error) {
	return m.IgnoreList, nil
}

func (m *MockGit) AppendIgnoreList(paths []string) error {
	m.IgnoreList = append(m.IgnoreList, paths...)
	m.IgnoreAppended = append(m.IgnoreAppended, paths...)
	return nil
}

// MockClassifier is a test double for domain.Classifier keyed by path.
type MockClassifier struct {
	Decisions map[string]domain.Decision // path -> decision
	Default   domain.Decision
	Err       error
	Calls     []string
}

// NewMockClassifier creates a MockClassifier that includes by default.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		Decisions: make(map[string]domain.Decision),
		Default:   domain.DecisionInclude,
	}
}

func (m *MockClassifier) Classify(_ context.Context, path string, _ []byte) (domain.Decision, error) {
	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return "", m.Err
	}
	if d, ok := m.Decisions[path]; ok {
		return d, nil
	}
	return m.Default, nil
}

// MockLocker is a test double for domain.RepoLocker.
type MockLocker struct {
	Err      error
	Acquired int
	Released int
}

func (m *MockLocker) Acquire(_ time.Duration) (func(), error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Acquired++
	return func() { m.Released++ }, nil
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Info(_, _, _ string)  {}
func (NopLogger) Warn(_, _, _ string)  {}
func (NopLogger) Error(_, _, _ string) {}

// Interface checks.
var (
	_ domain.Clock            = (*MockClock)(nil)
	_ domain.TaskRegistry     = (*MockRegistry)(nil)
	_ domain.StoreInitializer = (*MockRegistry)(nil)
	_ domain.Git              = (*MockGit)(nil)
	_ domain.Classifier       = (*MockClassifier)(nil)
	_ domain.RepoLocker       = (*MockLocker)(nil)
	_ domain.Logger           = NopLogger{}
)
