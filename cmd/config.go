package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/types"
)

const (
	configName = ".taskforge"
	envPrefix  = "TASKFORGE"
)

// GlobalAppConfig holds the global application configuration instance. It is
// loaded once per invocation by InitConfig and read-only thereafter; core
// packages receive it by value and never consult viper themselves.
var GlobalAppConfig types.AppConfig

var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// GetConfig returns the loaded application configuration.
func GetConfig() types.AppConfig {
	return GlobalAppConfig
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. Missing file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g. TASKFORGE_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		// Project-local config takes priority over the home directory.
		projectConfigDir := viper.GetString("project.rootDir")
		if projectConfigDir == "" {
			projectConfigDir = configName
		}
		if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
			viper.AddConfigPath(projectConfigDir) // ./.taskforge/.taskforge.yaml
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.taskforge.yaml
			viper.AddConfigPath(".")  // ./.taskforge.yaml
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	setDefaults()

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %s\n", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("projectName", "taskforge")
	viper.SetDefault("author", "")

	viper.SetDefault("project.rootDir", configName)

	viper.SetDefault("data.tasksFile", "tasks.json")
	viper.SetDefault("data.archiveFile", "archive.json")
	viper.SetDefault("data.journalFile", "journal.json")
	viper.SetDefault("data.format", "json")

	viper.SetDefault("display.width", 120)
	viper.SetDefault("display.defaultView", "table")
	viper.SetDefault("display.dateFormat", "locale")

	// Vocabularies are configuration, not code. Overriding any of these sets
	// changes what the engine accepts on the next write.
	viper.SetDefault("vocabulary.statuses", models.DefaultStatuses)
	viper.SetDefault("vocabulary.categories", models.DefaultCategories)
	viper.SetDefault("vocabulary.priorities", models.DefaultPriorities)
	viper.SetDefault("vocabulary.efforts", models.DefaultEfforts)
	viper.SetDefault("vocabulary.defaults.status", models.StatusTodo)
	viper.SetDefault("vocabulary.defaults.category", "feature")
	viper.SetDefault("vocabulary.defaults.priority", "p2-medium")
	viper.SetDefault("vocabulary.defaults.effort", "3-medium")
	viper.SetDefault("vocabulary.activeStatuses", []string{
		models.StatusTodo, models.StatusInProgress, models.StatusReview, models.StatusBlocked,
	})

	viper.SetDefault("context.budget", 16384)
	viper.SetDefault("context.recentWindowDays", 14)
	viper.SetDefault("context.journalLimit", 20)
	viper.SetDefault("context.cacheSize", 32)
}
