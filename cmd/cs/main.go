// Package main is the entry point for the cs CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/cli"
	"github.com/codesnap-dev/codesnap/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// Exit codes. User and precondition failures exit 1, backend failures
// (merge conflicts, classification outages, storage errors) exit 2, and
// a held repository lock exits 3.
const (
	exitUserError    = 1
	exitBackendError = 2
	exitBusy         = 3
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		// Allow no-args, help and version to work outside a git repository.
		if errors.Is(err, domain.ErrNotGitRepository) && canRunWithoutGit(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return err
	}
	defer container.Close()

	return cli.NewRootCommand(container, version).Execute()
}

func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return exitBusy
	case errors.Is(err, domain.ErrMergeConflict),
		errors.Is(err, domain.ErrClassificationUnavailable):
		return exitBackendError
	case errors.Is(err, domain.ErrNameConflict),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrNoCurrentTask),
		errors.Is(err, domain.ErrTaskNotActive),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrEmptyChangeSet),
		errors.Is(err, domain.ErrUncommittedChanges),
		errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrAlreadyInitialized),
		errors.Is(err, domain.ErrNotInitialized),
		errors.Is(err, domain.ErrNotGitRepository),
		errors.Is(err, domain.ErrInvalidTaskName):
		return exitUserError
	default:
		// Unclassified failures come from git, the registry or the
		// filesystem and count as backend errors.
		return exitBackendError
	}
}
