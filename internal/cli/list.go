package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/codesnap-dev/codesnap/internal/app"
	"github.com/codesnap-dev/codesnap/internal/domain"
	"github.com/codesnap-dev/codesnap/internal/usecase"
)

var (
	currentMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	stateStyles = map[domain.State]lipgloss.Style{
		domain.StateActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // green
		domain.StateApplied: lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // cyan
		domain.StateMerged:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // blue
		domain.StateAborted: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // red
		domain.StatePruned:  dimStyle,
	}
)

func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List tasks",
		GroupID: groupInspect,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{})
			if err != nil {
				return err
			}
			renderTaskList(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// renderTaskList writes the task table. The current task is marked with *.
func renderTaskList(w io.Writer, out *usecase.ListTasksOutput) {
	if len(out.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSTATE\tCOMMITS\tMODIFIED\tDESCRIPTION")
	for _, task := range out.Tasks {
		mark := " "
		if task.Name == out.Current {
			mark = currentMarkStyle.Render("*")
		}
		state := task.State.Display()
		if style, ok := stateStyles[task.State]; ok {
			state = style.Render(state)
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%d\t%s\t%s\n",
			mark,
			task.Name,
			state,
			task.Commits,
			dimStyle.Render(task.LastModified.Format("2006-01-02 15:04")),
			task.Description,
		)
	}
	_ = tw.Flush()
}
