package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/ui"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [id] [field] [value]",
	Short: "Update one field of a task",
	Long: fmt.Sprintf(`Update a single field of an active task.

Fields: %s

Enumerated fields are validated against the configured vocabulary. add-file
is idempotent; remove-file of an absent path is a no-op. comment appends a
new comment (comments are never edited or removed).

Examples:
  taskforge update 1 status in-progress
  taskforge update 1 add-file src/login.js
  taskforge update 1 comment "root cause was a stale session token"`, strings.Join(task.UpdateFields, ", ")),
	Args: cobra.RangeArgs(2, 3),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	field := args[1]
	value := ""
	if len(args) > 2 {
		value = args[2]
	}

	updated, err := svc.UpdateField(id, field, value)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(updated)
	}
	cmd.Printf("%s Updated task #%d (%s)\n", ui.StyleSuccess.Render("✔"), updated.ID, field)
	if isVerbose() {
		cmd.Print(ui.RenderTaskDetail(&updated, GetConfig().Display))
	}
	return nil
}
