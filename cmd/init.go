package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/store"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a taskforge project in the current directory",
	Long: `Creates the project directory, empty store documents, and a starter
configuration file. Safe to re-run: existing documents are left alone.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	config := GetConfig()

	st := store.NewFileStore()
	if err := st.Initialize(storeDir(), config.Data); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close() }()

	// An empty mutation materializes the documents on disk.
	if err := st.Mutate(func(snap *store.Snapshot) error { return nil }); err != nil {
		return fmt.Errorf("create store documents: %w", err)
	}

	cfgPath := filepath.Join(config.Project.RootDir, configName+".yaml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		starter := fmt.Sprintf("projectName: %s\ndata:\n  format: %s\n", config.ProjectName, config.Data.Format)
		if err := os.WriteFile(cfgPath, []byte(starter), 0o644); err != nil {
			return fmt.Errorf("write starter config: %w", err)
		}
		if isVerbose() {
			fmt.Fprintln(os.Stderr, "Wrote starter config:", cfgPath)
		}
	}

	if isJSON() {
		return printJSON(map[string]string{"root": config.Project.RootDir, "format": config.Data.Format})
	}
	cmd.Printf("Initialized taskforge project in %s (format: %s)\n",
		config.Project.RootDir, config.Data.Format)
	return nil
}
