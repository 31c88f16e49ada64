package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newCommitCommand(c *app.Container) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:     "commit <message>",
		Short:   "Record a snapshot on the current task branch",
		Long: `Commit records the working tree as a snapshot on the current task
branch. Newly created files are classified: deliberate changes join the
snapshot, generated noise goes onto the branch-local ignore list.`,
		GroupID: groupLifecycle,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				message = args[0]
			}
			out, err := c.CommitTaskUseCase().Execute(cmd.Context(), usecase.CommitTaskInput{
				Message: message,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %.8s] %d file(s) included\n",
				out.Task.Branch, out.Hash, len(out.Included))
			for _, path := range out.Ignored {
				fmt.Fprintf(cmd.OutOrStdout(), "  ignored: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message (alias for the positional argument)")
	return cmd
}
