package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
)

var backupDest string

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the store documents to a backup directory",
	RunE:  runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVarP(&backupDest, "dest", "d", "", "backup directory (default: <root>/backups/<timestamp>)")
}

func runBackup(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	dest := backupDest
	if dest == "" {
		dest = filepath.Join(GetConfig().Project.RootDir, "backups",
			time.Now().UTC().Format("20060102-150405"))
	}
	if err := st.Backup(dest); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"dest": dest})
	}
	cmd.Printf("%s Backed up store to %s\n", ui.StyleSuccess.Render("✔"), dest)
	return nil
}
