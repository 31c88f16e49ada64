package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   "Initialize codesnap in the current repository",
		GroupID: groupSetup,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.InitRepoUseCase().Execute(cmd.Context(), usecase.InitRepoInput{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized codesnap registry and default config.")
			return nil
		},
	}
}
