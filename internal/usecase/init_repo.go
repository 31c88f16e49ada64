// Package usecase contains the application use cases. Each operation is
// one file with an Input/Output pair and an Execute method.
package usecase

import (
	"context"
	"fmt"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

// InitRepoInput contains the parameters for initializing codesnap.
type InitRepoInput struct{}

// InitRepoOutput contains the result of initialization.
type InitRepoOutput struct {
	ConfigWritten bool
}

// InitRepo is the use case for initializing codesnap in a repository.
type InitRepo struct {
	store  domain.StoreInitializer
	config domain.ConfigWriter
	logger domain.Logger
}

// NewInitRepo creates a new InitRepo use case.
func NewInitRepo(store domain.StoreInitializer, config domain.ConfigWriter, logger domain.Logger) *InitRepo {
	return &InitRepo{store: store, config: config, logger: logger}
}

// Execute creates the registry marker and seeds the default repo config.
// It fails with ErrAlreadyInitialized when run twice.
func (uc *InitRepo) Execute(_ context.Context, _ InitRepoInput) (*InitRepoOutput, error) {
	if uc.store.IsInitialized() {
		return nil, domain.ErrAlreadyInitialized
	}

	if err := uc.store.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize registry: %w", err)
	}
	if err := uc.config.WriteRepoDefault(); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	uc.logger.Info("", "init", "registry initialized")
	return &InitRepoOutput{ConfigWritten: true}, nil
}
