// Package cli provides the command-line interface for cs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
)

// Command group IDs.
const (
	groupSetup     = "setup"
	groupLifecycle = "lifecycle"
	groupInspect   = "inspect"
)

// NewRootCommand creates the root command for cs.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "cs",
		Short: "Task-branch lifecycle manager",
		Long: `cs manages short-lived task branches on top of a git repository.
Each task is an isolated branch; snapshots classify newly created files
into the change set or a branch-local ignore list, and finished work is
applied or merged back onto the main branch.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup:"},
		&cobra.Group{ID: groupLifecycle, Title: "Task lifecycle:"},
		&cobra.Group{ID: groupInspect, Title: "Inspection:"},
	)

	root.AddCommand(
		newInitCommand(c),
		newStartCommand(c),
		newCommitCommand(c),
		newApplyCommand(c),
		newMergeCommand(c),
		newAbortCommand(c),
		newListCommand(c),
		newLogCommand(c),
		newDiffCommand(c),
		newPruneCommand(c),
	)

	return root
}
