// Package query evaluates multi-criteria filters over the active task
// partition. All functions are pure: they take a loaded snapshot slice and
// return derived results, never touching the store.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/types"
)

// Filter holds the optional criteria. Empty fields are wildcards; the
// effective predicate is the AND of every supplied field.
type Filter struct {
	Status   string
	Category string
	Priority string
	// Keyword is a case-insensitive substring match against title,
	// description, and comment text.
	Keyword string
	// File matches tasks whose relatedFiles set contains the exact path.
	File   string
	Author string
	Branch string
}

// Matches reports whether t satisfies every supplied criterion.
func (f Filter) Matches(t *models.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Author != "" && t.Author != f.Author {
		return false
	}
	if f.Branch != "" && t.Branch != f.Branch {
		return false
	}
	if f.File != "" && !t.HasFile(f.File) {
		return false
	}
	if f.Keyword != "" && !strings.Contains(t.SearchText(), strings.ToLower(f.Keyword)) {
		return false
	}
	return true
}

// Page selects a 1-indexed window of the result. A zero Page means no
// pagination: all matches are returned.
type Page struct {
	Number int
	Size   int
}

// Result is a filtered, ordered, paginated view of the active partition.
// PageCount is 0 when nothing matched, by convention.
type Result struct {
	Items      []models.Task
	TotalCount int
	PageCount  int
}

// Run filters tasks, sorts them by id ascending (stable), and applies
// pagination. Requesting a page past the last one yields an empty item list,
// not an error.
func Run(tasks []models.Task, f Filter, p Page) (Result, error) {
	matched := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			matched = append(matched, tasks[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	res := Result{TotalCount: len(matched)}
	if p.Size <= 0 && p.Number <= 0 {
		res.Items = matched
		if res.TotalCount > 0 {
			res.PageCount = 1
		}
		return res, nil
	}
	if p.Size <= 0 {
		return Result{}, types.NewValidationError("pageSize", "page size must be positive")
	}
	if p.Number < 1 {
		return Result{}, types.NewValidationError("page", "page numbers are 1-indexed")
	}

	res.PageCount = (len(matched) + p.Size - 1) / p.Size
	start := (p.Number - 1) * p.Size
	if start >= len(matched) {
		res.Items = []models.Task{}
		return res, nil
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	res.Items = matched[start:end]
	return res, nil
}

// Stats aggregates counts over both partitions and the journal.
type Stats struct {
	TotalActive   int            `json:"totalActive"`
	TotalArchived int            `json:"totalArchived"`
	TotalJournal  int            `json:"totalJournal"`
	ByStatus      map[string]int `json:"byStatus"`
	ByCategory    map[string]int `json:"byCategory"`
	ByPriority    map[string]int `json:"byPriority"`
}

// Aggregate computes the stats view.
func Aggregate(tasks []models.Task, archived []models.ArchivedTask, journal []models.JournalEntry) Stats {
	st := Stats{
		TotalActive:   len(tasks),
		TotalArchived: len(archived),
		TotalJournal:  len(journal),
		ByStatus:      map[string]int{},
		ByCategory:    map[string]int{},
		ByPriority:    map[string]int{},
	}
	for i := range tasks {
		st.ByStatus[tasks[i].Status]++
		st.ByCategory[tasks[i].Category]++
		st.ByPriority[tasks[i].Priority]++
	}
	return st
}

// FileChange describes one path from a caller-supplied file list and the
// active tasks referencing it.
type FileChange struct {
	Path    string        `json:"path"`
	TaskIDs []int         `json:"taskIds"`
	Tasks   []models.Task `json:"-"`
}

// Changes maps each path in files to the active tasks that reference it.
// Paths no task references are included with an empty id list so the caller
// can show untracked work.
func Changes(tasks []models.Task, files []string) []FileChange {
	out := make([]FileChange, 0, len(files))
	for _, path := range files {
		fc := FileChange{Path: path, TaskIDs: []int{}}
		for i := range tasks {
			if tasks[i].HasFile(path) {
				fc.TaskIDs = append(fc.TaskIDs, tasks[i].ID)
				fc.Tasks = append(fc.Tasks, tasks[i])
			}
		}
		out = append(out, fc)
	}
	return out
}

// Recent returns tasks updated within the window, most recently updated
// first. Ties keep id order.
func Recent(tasks []models.Task, since time.Time) []models.Task {
	out := make([]models.Task, 0)
	for i := range tasks {
		if !tasks[i].UpdatedAt.Before(since) {
			out = append(out, tasks[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
