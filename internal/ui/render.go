package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/types"
)

// FormatDate renders a timestamp according to the configured dateFormat
// (locale, iso, or short).
func FormatDate(t time.Time, dateFormat string) string {
	switch dateFormat {
	case "iso":
		return t.Format(time.RFC3339)
	case "short":
		return t.Format("2006-01-02")
	default: // locale
		return t.Format("Jan 2, 2006 15:04")
	}
}

// RenderTaskList renders tasks in the requested view (table, compact, or
// detailed).
func RenderTaskList(tasks []models.Task, display types.DisplayConfig, view string) string {
	if len(tasks) == 0 {
		return StyleSubtle.Render("no tasks found") + "\n"
	}
	switch view {
	case "compact":
		return renderCompact(tasks)
	case "detailed":
		var sb strings.Builder
		for i := range tasks {
			sb.WriteString(RenderTaskDetail(&tasks[i], display))
			sb.WriteString("\n")
		}
		return sb.String()
	default:
		return renderTable(tasks, display)
	}
}

func renderTable(tasks []models.Task, display types.DisplayConfig) string {
	t := Table{
		Headers:  []string{"ID", "Title", "Status", "Category", "Priority", "Updated"},
		MaxWidth: display.Width / 3,
	}
	for i := range tasks {
		task := &tasks[i]
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(task.ID),
			task.Title,
			task.Status,
			task.Category,
			task.Priority,
			FormatDate(task.UpdatedAt, display.DateFormat),
		})
	}
	return t.Render()
}

func renderCompact(tasks []models.Task) string {
	var sb strings.Builder
	for i := range tasks {
		t := &tasks[i]
		fmt.Fprintf(&sb, "%s %s %s\n",
			StylePrimary.Render(fmt.Sprintf("#%d", t.ID)),
			StyleTitle.Render(t.Title),
			StatusStyle(t.Status).Render("["+t.Status+"]"))
	}
	return sb.String()
}

// RenderTaskDetail renders one task with all fields, comments included.
func RenderTaskDetail(t *models.Task, display types.DisplayConfig) string {
	var sb strings.Builder
	sb.WriteString(StyleSectionTitle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s  %s %s  %s %s  %s %s\n",
		StyleSubtle.Render("status:"), StatusStyle(t.Status).Render(t.Status),
		StyleSubtle.Render("category:"), t.Category,
		StyleSubtle.Render("priority:"), t.Priority,
		StyleSubtle.Render("effort:"), t.Effort)
	if t.Description != "" {
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}
	if len(t.RelatedFiles) > 0 {
		fmt.Fprintf(&sb, "%s %s\n", StyleSubtle.Render("files:"), strings.Join(t.RelatedFiles, ", "))
	}
	if t.Author != "" {
		fmt.Fprintf(&sb, "%s %s\n", StyleSubtle.Render("author:"), t.Author)
	}
	if t.Branch != "" {
		fmt.Fprintf(&sb, "%s %s\n", StyleSubtle.Render("branch:"), t.Branch)
	}
	fmt.Fprintf(&sb, "%s %s  %s %s\n",
		StyleSubtle.Render("created:"), FormatDate(t.CreatedAt, display.DateFormat),
		StyleSubtle.Render("updated:"), FormatDate(t.UpdatedAt, display.DateFormat))
	for _, c := range t.Comments {
		fmt.Fprintf(&sb, "%s %s (%s): %s\n",
			StyleSubtle.Render("comment"), c.Author,
			FormatDate(c.Timestamp, display.DateFormat), c.Text)
	}
	return sb.String()
}

// RenderArchivedList renders the archive partition newest-first.
func RenderArchivedList(archived []models.ArchivedTask, display types.DisplayConfig) string {
	if len(archived) == 0 {
		return StyleSubtle.Render("no archived tasks") + "\n"
	}
	t := Table{
		Headers:  []string{"ID", "Title", "Status", "Archived", "Reason"},
		MaxWidth: display.Width / 3,
	}
	for i := range archived {
		a := &archived[i]
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(a.ID),
			a.Title,
			a.Status,
			FormatDate(a.ArchivedAt, display.DateFormat),
			a.ArchiveReason,
		})
	}
	return t.Render()
}

// RenderJournal renders journal entries in listing order.
func RenderJournal(entries []models.JournalEntry, display types.DisplayConfig) string {
	if len(entries) == 0 {
		return StyleSubtle.Render("no journal entries") + "\n"
	}
	var sb strings.Builder
	for i := range entries {
		e := &entries[i]
		fmt.Fprintf(&sb, "%s %s %s",
			StylePrimary.Render(fmt.Sprintf("#%d", e.ID)),
			StyleWarning.Render("["+string(e.Type)+"]"),
			StyleSubtle.Render(FormatDate(e.Timestamp, display.DateFormat)))
		if e.RelatedTaskID > 0 {
			fmt.Fprintf(&sb, " %s", StyleSubtle.Render(fmt.Sprintf("(task %d)", e.RelatedTaskID)))
		}
		sb.WriteString("\n  ")
		sb.WriteString(e.Text)
		if len(e.Tags) > 0 {
			fmt.Fprintf(&sb, "  %s", StyleSubtle.Render(strings.Join(e.Tags, " ")))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
