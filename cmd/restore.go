package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [id]",
	Short: "Restore an archived task to the active partition",
	Long: `Move an archived task back to the active partition with its original id
and file associations intact.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	restored, err := svc.Restore(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(restored)
	}
	cmd.Printf("%s Restored task #%d: %s\n", ui.StyleSuccess.Render("✔"), restored.ID, restored.Title)
	return nil
}
