package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskforge/taskforge/internal/ui"
	"github.com/taskforge/taskforge/models"
)

// Each subcommand gets its own flag variables: registering two flags with
// different defaults on one shared variable would leave only the second
// default standing.
var (
	journalAddType   string
	journalAddTags   []string
	journalAddTaskID int

	journalListType   string
	journalListTaskID int
	journalListLimit  int
)

// journalCmd represents the journal command group
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and browse journal entries",
	Long: `The journal is an append-only log of progress notes, decisions, blockers,
learnings, and git commits. Entries are immutable once written.`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Append a journal entry",
	Long: `Append an entry to the journal log. The optional task reference is weak:
it may point to a task that is later archived, and that is fine.

Examples:
  taskforge journal add "switched session storage to redis" --type decision
  taskforge journal add "blocked on auth service rollout" --type blocker --task 3`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE:  runJournalList,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)

	journalAddCmd.Flags().StringVarP(&journalAddType, "type", "t", string(models.JournalProgress),
		fmt.Sprintf("entry type (%s)", joinJournalTypes()))
	journalAddCmd.Flags().StringSliceVar(&journalAddTags, "tag", nil, "tag (repeatable)")
	journalAddCmd.Flags().IntVar(&journalAddTaskID, "task", 0, "related task id")

	journalListCmd.Flags().IntVarP(&journalListLimit, "limit", "n", 0, "show at most n entries")
	journalListCmd.Flags().StringVarP(&journalListType, "type", "t", "", "filter by entry type")
	journalListCmd.Flags().IntVar(&journalListTaskID, "task", 0, "filter by related task id")
}

func joinJournalTypes() string {
	parts := make([]string, len(models.JournalTypes))
	for i, t := range models.JournalTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	svc, st, err := newService()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entry, err := svc.AddJournalEntry(models.JournalType(journalAddType), args[0], journalAddTags, journalAddTaskID)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(entry)
	}
	cmd.Printf("%s Journal entry #%d recorded (%s)\n", ui.StyleSuccess.Render("✔"), entry.ID, entry.Type)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	st, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	snap, err := st.Load()
	if err != nil {
		return err
	}

	entries := make([]models.JournalEntry, 0, len(snap.Journal.Entries))
	for _, e := range snap.Journal.Entries {
		if journalListType != "" && e.Type != models.JournalType(journalListType) {
			continue
		}
		if journalListTaskID > 0 && e.RelatedTaskID != journalListTaskID {
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if journalListLimit > 0 && len(entries) > journalListLimit {
		entries = entries[:journalListLimit]
	}

	if isJSON() {
		return printJSON(entries)
	}
	cmd.Print(ui.RenderJournal(entries, GetConfig().Display))
	return nil
}
