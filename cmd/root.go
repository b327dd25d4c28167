package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskforge/taskforge/internal/contextgen"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches command output to JSON payloads.
	jsonOutput bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskforge",
	Short: "Taskforge tracks development tasks and builds AI context from them.",
	Long: `Taskforge is a local, file-backed task tracker for development work.
It persists tasks and journal entries as structured documents, answers
filtered queries, and assembles a bounded-size context document for AI
assistants.`,
	Version:      version,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskforge/.taskforge.yaml or $HOME/.taskforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// storeDir returns the directory holding the backing documents.
func storeDir() string {
	return filepath.Join(GetConfig().Project.RootDir, "data")
}

// GetStore initializes and returns the file store from the loaded config.
func GetStore() (store.Store, error) {
	s := store.NewFileStore()
	config := GetConfig()
	if err := s.Initialize(storeDir(), config.Data); err != nil {
		return nil, err
	}
	return s, nil
}

// newService wires the mutation engine for one command invocation.
func newService() (*task.Service, store.Store, error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	return task.NewService(st, GetConfig()), st, nil
}

// newBuilder wires the context builder for one command invocation.
func newBuilder() (*contextgen.Builder, store.Store, error) {
	st, err := GetStore()
	if err != nil {
		return nil, nil, err
	}
	b, err := contextgen.NewBuilder(st, GetConfig())
	if err != nil {
		return nil, nil, err
	}
	return b, st, nil
}
