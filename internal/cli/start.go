package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newStartCommand(c *app.Container) *cobra.Command {
	var (
		description string
		base        string
		force       bool
	)

	cmd := &cobra.Command{
		Use:     "start <name>",
		Short:   "Start a new task on its own branch",
		GroupID: groupLifecycle,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StartTaskUseCase().Execute(cmd.Context(), usecase.StartTaskInput{
				Name:        args[0],
				Description: description,
				Base:        base,
				Force:       force,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started task '%s' on branch %s (base %s @ %.8s)\n",
				out.Task.Name, out.Task.Branch, out.Task.BaseRef, out.Task.BaseHead)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&base, "base", "", "base branch (defaults to the configured main branch)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "proceed despite uncommitted changes")
	return cmd
}
