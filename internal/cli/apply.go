package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newApplyCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "apply [name]",
		Short:   "Stage the task's changes on the main branch without committing",
		GroupID: groupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ApplyTaskInput{}
			if len(args) == 1 {
				in.Name = args[0]
			}
			out, err := c.ApplyTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied task '%s' onto %s (uncommitted).\n",
				out.Task.Name, out.Task.BaseRef)
			return nil
		},
	}
}
