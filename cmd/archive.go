package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
)

var archiveReason string

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "Move a task to the archive partition",
	Long: `Move an active task to the archive partition, preserving its id and
history. Archived tasks can be restored later. Without an id, an interactive
picker is shown.

Examples:
  taskforge archive 1 --reason "fixed"
  taskforge archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVarP(&archiveReason, "reason", "r", "", "why the task is being archived")
}

func runArchive(cmd *cobra.Command, args []string) error {
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
		selected, err := selectTaskInteractive(st, "Select a task to archive")
		if err != nil {
			return err
		}
		id = selected.ID
	}

	archived, err := svc.Archive(id, archiveReason)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(archived)
	}
	cmd.Printf("%s Archived task #%d: %s\n", ui.StyleSuccess.Render("✔"), archived.ID, archived.Title)
	return nil
}
