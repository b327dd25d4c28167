package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/ui"
)

var (
	addDescription string
	addStatus      string
	addCategory    string
	addPriority    string
	addEffort      string
	addBranch      string
	addFiles       []string
	addInteractive bool
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the active partition.

Quick add takes the title as an argument and fills the remaining fields from
configured defaults. Interactive add (-i) walks through every field.

Examples:
  taskforge add "Fix login bug" --category bugfix
  taskforge add -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "initial status (default from config)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "task category (default from config)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (default from config)")
	addCmd.Flags().StringVarP(&addEffort, "effort", "e", "", "effort estimate (default from config)")
	addCmd.Flags().StringVarP(&addBranch, "branch", "b", "", "associated git branch")
	addCmd.Flags().StringSliceVarP(&addFiles, "file", "f", nil, "related file path (repeatable)")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "prompt for each field")
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	req := task.CreateRequest{
		Description:  addDescription,
		Status:       addStatus,
		Category:     addCategory,
		Priority:     addPriority,
		Effort:       addEffort,
		Branch:       addBranch,
		RelatedFiles: addFiles,
	}
	if len(args) > 0 {
		req.Title = args[0]
	}

	if addInteractive {
		if err := fillInteractive(&req); err != nil {
			return err
		}
	} else if req.Title == "" {
		return fmt.Errorf("a title argument is required (or use -i for interactive add)")
	}

	created, err := svc.Create(req)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(created)
	}
	cmd.Printf("%s Created task #%d: %s\n", ui.StyleSuccess.Render("✔"), created.ID, created.Title)
	return nil
}

// fillInteractive prompts for any field the flags left empty.
func fillInteractive(req *task.CreateRequest) error {
	vocab := GetConfig().Vocabulary
	var err error

	if req.Title == "" {
		if req.Title, err = promptString("Title", true); err != nil {
			return err
		}
	}
	if req.Description == "" {
		if req.Description, err = promptString("Description", false); err != nil {
			return err
		}
	}
	if req.Status == "" {
		if req.Status, err = promptSelect("Status", vocab.Statuses); err != nil {
			return err
		}
	}
	if req.Category == "" {
		if req.Category, err = promptSelect("Category", vocab.Categories); err != nil {
			return err
		}
	}
	if req.Priority == "" {
		if req.Priority, err = promptSelect("Priority", vocab.Priorities); err != nil {
			return err
		}
	}
	if req.Effort == "" {
		if req.Effort, err = promptSelect("Effort", vocab.Efforts); err != nil {
			return err
		}
	}
	return nil
}
