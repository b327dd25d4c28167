package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Show one task in full detail",
	Long: `Show a single active task with all fields and comments. Without an id,
an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var id int
	if len(args) > 0 {
		if id, err = parseTaskID(args[0]); err != nil {
			return err
		}
	} else {
		selected, err := selectTaskInteractive(st, "Select a task to view")
		if err != nil {
			return err
		}
		id = selected.ID
	}

	t, err := svc.Get(id)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(t)
	}
	cmd.Print(ui.RenderTaskDetail(&t, GetConfig().Display))
	return nil
}
