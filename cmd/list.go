package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/query"
	"github.com/taskforge/taskforge/internal/ui"
)

var (
	listFilter   query.Filter
	listPage     int
	listPageSize int
	listView     string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List active tasks",
	Long: `List active tasks, optionally filtered and paginated.

All filters are optional and combine with AND. The keyword filter matches
case-insensitively against title, description, and comment text.

Examples:
  taskforge list
  taskforge list --status in-progress --category bugfix
  taskforge list --keyword login --page 2 --page-size 10
  taskforge list --file src/login.js`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFilter.Status, "status", "s", "", "filter by status")
	listCmd.Flags().StringVar(&listFilter.Category, "category", "", "filter by category")
	listCmd.Flags().StringVarP(&listFilter.Priority, "priority", "p", "", "filter by priority")
	listCmd.Flags().StringVarP(&listFilter.Keyword, "keyword", "k", "", "keyword substring filter")
	listCmd.Flags().StringVarP(&listFilter.File, "file", "f", "", "filter by related file path")
	listCmd.Flags().StringVar(&listFilter.Author, "author", "", "filter by author")
	listCmd.Flags().StringVarP(&listFilter.Branch, "branch", "b", "", "filter by branch")
	listCmd.Flags().IntVar(&listPage, "page", 0, "page number (1-indexed)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "tasks per page")
	listCmd.Flags().StringVar(&listView, "view", "", "view mode: table, compact, or detailed")
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, err := st.Load()
	if err != nil {
		return err
	}

	page := query.Page{Number: listPage, Size: listPageSize}
	if page.Size > 0 && page.Number == 0 {
		page.Number = 1
	}
	res, err := query.Run(snap.Tasks.Tasks, listFilter, page)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(res)
	}

	config := GetConfig()
	view := listView
	if view == "" {
		view = config.Display.DefaultView
	}
	cmd.Print(ui.RenderTaskList(res.Items, config.Display, view))
	if res.PageCount > 1 {
		page := listPage
		if page < 1 {
			page = 1
		}
		cmd.Println(ui.StyleSubtle.Render(
			fmt.Sprintf("page %d of %d (%d tasks total)", page, res.PageCount, res.TotalCount)))
	}
	return nil
}
