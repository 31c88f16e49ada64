package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newAbortCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "abort [name]",
		Short:   "Discard the task's work and delete its branch",
		GroupID: groupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.AbortTaskInput{}
			if len(args) == 1 {
				in.Name = args[0]
			}
			out, err := c.AbortTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Aborted task '%s'; branch %s deleted.\n",
				out.Task.Name, out.Task.Branch)
			return nil
		},
	}
}
