package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newPruneCommand(c *app.Container) *cobra.Command {
	var (
		olderThan string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Delete branches of old closed tasks",
		GroupID: groupLifecycle,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var threshold time.Duration
			if olderThan != "" {
				d, err := time.ParseDuration(olderThan)
				if err != nil {
					return fmt.Errorf("invalid --older-than value %q: %w", olderThan, err)
				}
				threshold = d
			}

			out, err := c.PruneTasksUseCase().Execute(cmd.Context(), usecase.PruneTasksInput{
				OlderThan: threshold,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Pruned) == 0 {
				fmt.Fprintln(w, "Nothing to prune.")
				return nil
			}
			for _, task := range out.Pruned {
				if dryRun {
					fmt.Fprintf(w, "Would prune task '%s' (%s)\n", task.Name, task.Branch)
					continue
				}
				fmt.Fprintf(w, "Pruned task '%s' (%s)\n", task.Name, task.Branch)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "", "retention threshold, e.g. 720h (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report candidates without deleting anything")
	return cmd
}
