package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newMergeCommand(c *app.Container) *cobra.Command {
	var squash bool

	cmd := &cobra.Command{
		Use:     "merge [name]",
		Short:   "Merge the task branch into the main branch",
		GroupID: groupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.MergeTaskInput{Squash: squash}
			if len(args) == 1 {
				in.Name = args[0]
			}
			out, err := c.MergeTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged task '%s' into %s.\n",
				out.Task.Name, out.Task.BaseRef)
			return nil
		},
	}

	cmd.Flags().BoolVar(&squash, "squash", false, "collapse the branch into a single commit")
	return cmd
}
