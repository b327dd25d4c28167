package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/query"
	"github.com/taskforge/taskforge/internal/ui"
)

// changesCmd represents the changes command
var changesCmd = &cobra.Command{
	Use:   "changes [file...]",
	Short: "Map changed files to the tasks that reference them",
	Long: `Given a list of file paths (typically the output of git diff --name-only),
show which active tasks reference each path. Paths no task references are
listed too, so untracked work stands out.

Example:
  git diff --name-only | xargs taskforge changes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChanges,
}

func init() {
	rootCmd.AddCommand(changesCmd)
}

func runChanges(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, err := st.Load()
	if err != nil {
		return err
	}
	changes := query.Changes(snap.Tasks.Tasks, args)

	if isJSON() {
		return printJSON(changes)
	}

	for _, fc := range changes {
		if len(fc.TaskIDs) == 0 {
			cmd.Printf("%s %s\n", ui.StyleWarning.Render("?"), fc.Path)
			continue
		}
		refs := make([]string, len(fc.Tasks))
		for i, t := range fc.Tasks {
			refs[i] = fmt.Sprintf("#%d %s", t.ID, t.Title)
		}
		cmd.Printf("%s %s → %s\n", ui.StyleSuccess.Render("•"), fc.Path, strings.Join(refs, "; "))
	}
	return nil
}
