// Package app provides the dependency injection container for the application.
package app

import (
	"os"

	"github.com/codesnap-dev/codesnap/internal/domain"
	"github.com/codesnap-dev/codesnap/internal/infra/classify"
	"github.com/codesnap-dev/codesnap/internal/infra/config"
	"github.com/codesnap-dev/codesnap/internal/infra/git"
	"github.com/codesnap-dev/codesnap/internal/infra/lock"
	"github.com/codesnap-dev/codesnap/internal/infra/logging"
	"github.com/codesnap-dev/codesnap/internal/infra/registry"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

// Paths holds the resolved repository paths.
type Paths struct {
	RepoRoot string // Root directory of the git repository
	GitDir   string // Path to .git directory
	SnapDir  string // Path to .git/codesnap directory
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	Tasks      domain.TaskRegistry
	Store      domain.StoreInitializer
	Git        domain.Git
	Classifier domain.Classifier
	Locker     domain.RepoLocker
	Clock      domain.Clock
	Logger     domain.Logger
	Config     *domain.Config
	ConfigMgr  domain.ConfigWriter
	Paths      Paths
}

// New creates a Container by detecting the git repository from dir.
func New(dir string) (*Container, error) {
	gitClient, err := git.NewClient(dir)
	if err != nil {
		return nil, err
	}

	paths := Paths{
		RepoRoot: gitClient.RepoRoot(),
		GitDir:   gitClient.GitDir(),
		SnapDir:  domain.RepoSnapDir(gitClient.GitDir()),
	}

	loader := config.NewLoader(paths.SnapDir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	store := registry.NewWithRepo(gitClient.Repository(), registry.DefaultNamespace)
	logger := logging.New(paths.SnapDir, logging.ParseLevel(cfg.Log.Level))

	var classifier domain.Classifier
	if cfg.Classifier.Disabled {
		classifier = classify.NewStatic(domain.DecisionInclude)
	} else {
		classifier = classify.NewAnthropic(os.Getenv(cfg.Classifier.APIKeyEnv), cfg.Classifier.Model)
	}

	return &Container{
		Tasks:      store,
		Store:      store,
		Git:        gitClient,
		Classifier: classifier,
		Locker:     lock.New(domain.LockPath(paths.SnapDir)),
		Clock:      domain.RealClock{},
		Logger:     logger,
		Config:     cfg,
		ConfigMgr:  loader,
		Paths:      paths,
	}, nil
}

// NewWithDeps creates a Container with custom dependencies for testing.
func NewWithDeps(
	tasks domain.TaskRegistry,
	store domain.StoreInitializer,
	gitPort domain.Git,
	classifier domain.Classifier,
	locker domain.RepoLocker,
	clock domain.Clock,
	logger domain.Logger,
	cfg *domain.Config,
	configMgr domain.ConfigWriter,
) *Container {
	return &Container{
		Tasks:      tasks,
		Store:      store,
		Git:        gitPort,
		Classifier: classifier,
		Locker:     locker,
		Clock:      clock,
		Logger:     logger,
		Config:     cfg,
		ConfigMgr:  configMgr,
	}
}

// Close releases resources held by the container, such as open log files.
func (c *Container) Close() error {
	if closer, ok := c.Logger.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// InitRepoUseCase returns a new InitRepo use case.
func (c *Container) InitRepoUseCase() *usecase.InitRepo {
	return usecase.NewInitRepo(c.Store, c.ConfigMgr, c.Logger)
}

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() *usecase.StartTask {
	return usecase.NewStartTask(c.Tasks, c.Store, c.Git, c.Locker, c.Clock, c.Logger, c.Config)
}

// CommitTaskUseCase returns a new CommitTask use case.
func (c *Container) CommitTaskUseCase() *usecase.CommitTask {
	return usecase.NewCommitTask(c.Tasks, c.Git, c.Classifier, c.Locker, c.Clock, c.Logger, c.Config)
}

// ApplyTaskUseCase returns a new ApplyTask use case.
func (c *Container) ApplyTaskUseCase() *usecase.ApplyTask {
	return usecase.NewApplyTask(c.Tasks, c.Git, c.Locker, c.Clock, c.Logger, c.Config)
}

// MergeTaskUseCase returns a new MergeTask use case.
func (c *Container) MergeTaskUseCase() *usecase.MergeTask {
	return usecase.NewMergeTask(c.Tasks, c.Git, c.Locker, c.Clock, c.Logger, c.Config)
}

// AbortTaskUseCase returns a new AbortTask use case.
func (c *Container) AbortTaskUseCase() *usecase.AbortTask {
	return usecase.NewAbortTask(c.Tasks, c.Git, c.Locker, c.Clock, c.Logger, c.Config)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// ShowLogUseCase returns a new ShowLog use case.
func (c *Container) ShowLogUseCase() *usecase.ShowLog {
	return usecase.NewShowLog(c.Tasks, c.Git)
}

// ShowDiffUseCase returns a new ShowDiff use case.
func (c *Container) ShowDiffUseCase() *usecase.ShowDiff {
	return usecase.NewShowDiff(c.Tasks, c.Git)
}

// PruneTasksUseCase returns a new PruneTasks use case.
func (c *Container) PruneTasksUseCase() *usecase.PruneTasks {
	return usecase.NewPruneTasks(c.Tasks, c.Git, c.Locker, c.Clock, c.Logger, c.Config)
}
