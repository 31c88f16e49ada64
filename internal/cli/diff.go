package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

func newDiffCommand(c *app.Container) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:     "diff [name]",
		Short:   "Show the task's cumulative diff against its base",
		GroupID: groupInspect,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowDiffInput{}
			if len(args) == 1 {
				in.Name = args[0]
			}
			out, err := c.ShowDiffUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			if out.Patch == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' has no changes against %s.\n",
					out.Task.Name, out.Task.BaseRef)
				return nil
			}
			if noColor || !isTerminal(cmd.OutOrStdout()) {
				fmt.Fprint(cmd.OutOrStdout(), out.Patch)
				return nil
			}
			return writeColoredPatch(cmd.OutOrStdout(), out.Patch)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable diff colorization")
	return cmd
}

// writeColoredPatch renders the patch through the diff lexer for terminals.
// Falls back to plain output when tokenization fails.
func writeColoredPatch(w io.Writer, patch string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		_, err := fmt.Fprint(w, patch)
		return err
	}

	iterator, err := lexer.Tokenise(nil, patch)
	if err != nil {
		_, werr := fmt.Fprint(w, patch)
		return werr
	}

	formatter := formatters.Get("terminal256")
	style := styles.Get("native")
	return formatter.Format(w, style, iterator)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
