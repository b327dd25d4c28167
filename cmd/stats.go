package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/query"
	"github.com/taskforge/taskforge/internal/ui"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate task counts",
	Long:  `Show counts of active, archived, and journal records, broken down by status, category, and priority.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, err := st.Load()
	if err != nil {
		return err
	}
	stats := query.Aggregate(snap.Tasks.Tasks, snap.Archive.Archived, snap.Journal.Entries)

	if isJSON() {
		return printJSON(stats)
	}

	cmd.Println(ui.StyleSectionTitle.Render("Task Statistics"))
	cmd.Printf("active: %d  archived: %d  journal entries: %d\n\n",
		stats.TotalActive, stats.TotalArchived, stats.TotalJournal)
	printBreakdown(cmd, "By status", stats.ByStatus)
	printBreakdown(cmd, "By category", stats.ByCategory)
	printBreakdown(cmd, "By priority", stats.ByPriority)
	return nil
}

func printBreakdown(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Println(ui.StyleTitle.Render(title))
	for _, k := range keys {
		cmd.Println(ui.StyleSubtle.Render(fmt.Sprintf("  %-16s %d", k, counts[k])))
	}
	cmd.Println()
}
