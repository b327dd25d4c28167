package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
)

// archivesCmd represents the archives command
var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List archived tasks, newest first",
	RunE:  runArchives,
}

func init() {
	rootCmd.AddCommand(archivesCmd)
}

func runArchives(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	archived, err := svc.ListArchived()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(archived)
	}
	cmd.Print(ui.RenderArchivedList(archived, GetConfig().Display))
	return nil
}
