package cmd

import (
	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/contextgen"
)

var (
	contextTaskID    int
	contextFile      string
	contextVerbosity string
	contextFormat    string
	contextBudget    int
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:     "context",
	Aliases: []string{"ai-context"},
	Short:   "Build a size-bounded context document for AI assistants",
	Long: `Assemble a deterministic, size-bounded summary of the current working set
(or a single task / file scope) for pasting into an AI assistant prompt.

Identical scope, verbosity, and store state always produce byte-identical
output. Output over the size budget is truncated from the tail with a
marker.

Examples:
  taskforge context
  taskforge context --task 1 --verbosity full
  taskforge context --file src/login.js --format json --budget 4096`,
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)

	contextCmd.Flags().IntVarP(&contextTaskID, "task", "t", 0, "scope to one task id")
	contextCmd.Flags().StringVarP(&contextFile, "file", "f", "", "scope to tasks referencing a file path")
	contextCmd.Flags().StringVar(&contextVerbosity, "verbosity", "", "brief, normal, or full")
	contextCmd.Flags().StringVar(&contextFormat, "format", "", "markdown or json")
	contextCmd.Flags().IntVar(&contextBudget, "budget", 0, "size budget in bytes (min 256; default from config)")
}

func runContext(cmd *cobra.Command, args []string) error {
	builder, st, err := newBuilder()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	format := contextFormat
	if format == "" && isJSON() {
		format = contextgen.FormatJSON
	}

	doc, err := builder.Build(contextgen.Request{
		TaskID:    contextTaskID,
		File:      contextFile,
		Verbosity: contextVerbosity,
		Format:    format,
		Budget:    contextBudget,
	})
	if err != nil {
		return err
	}
	cmd.Println(doc)
	return nil
}
