package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newLogCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "log [name]",
		Short:   "Show the task's snapshots",
		GroupID: groupInspect,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogInput{}
			if len(args) == 1 {
				in.Name = args[0]
			}
			out, err := c.ShowLogUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			if len(out.Commits) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' has no snapshots.\n", out.Task.Name)
				return nil
			}
			for _, commit := range out.Commits {
				fmt.Fprintf(cmd.OutOrStdout(), "%.8s  %s  %s  %s\n",
					commit.Hash,
					commit.When.Format("2006-01-02 15:04"),
					commit.Author,
					commit.Message,
				)
			}
			return nil
		},
	}
}
