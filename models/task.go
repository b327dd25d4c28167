package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus is a status value. The legal set is runtime configuration; the
// constants below are only the shipped defaults.
type TaskStatus = string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
	StatusBlocked    TaskStatus = "blocked"
	StatusArchived   TaskStatus = "archived"
)

// Default category, priority, and effort vocabularies. Like statuses, these
// are overridable through configuration.
var (
	DefaultStatuses   = []string{StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusBlocked, StatusArchived}
	DefaultCategories = []string{"feature", "bugfix", "refactor", "docs", "test", "chore", "technical-debt"}
	DefaultPriorities = []string{"p0-critical", "p1-high", "p2-medium", "p3-low"}
	DefaultEfforts    = []string{"1-trivial", "2-small", "3-medium", "5-large", "8-xlarge"}
)

// Comment is an append-only annotation on a task. Comments are never edited
// or removed through normal operation.
type Comment struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Author    string    `json:"author" yaml:"author" toml:"author"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Text      string    `json:"text" yaml:"text" toml:"text"`
}

// Task represents a unit of work.
type Task struct {
	ID           int        `json:"id" yaml:"id" toml:"id" validate:"required,min=1"`
	Title        string     `json:"title" yaml:"title" toml:"title" validate:"required,min=1"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Status       TaskStatus `json:"status" yaml:"status" toml:"status"`
	Category     string     `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Priority     string     `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	Effort       string     `json:"effort,omitempty" yaml:"effort,omitempty" toml:"effort,omitempty"`
	RelatedFiles []string   `json:"relatedFiles,omitempty" yaml:"relatedFiles,omitempty" toml:"relatedFiles,omitempty"`
	Comments     []Comment  `json:"comments,omitempty" yaml:"comments,omitempty" toml:"comments,omitempty"`
	Author       string     `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Branch       string     `json:"branch,omitempty" yaml:"branch,omitempty" toml:"branch,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	UpdatedAt    time.Time  `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required"`
}

// TaskList is the active-partition document.
type TaskList struct {
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks"`
	// NextHint is advisory only; id allocation always derives from the
	// maximum existing id so out-of-band edits self-heal.
	NextHint int `json:"nextHint,omitempty" yaml:"nextHint,omitempty" toml:"nextHint,omitempty"`
}

// HasFile reports whether path is already associated with the task.
func (t *Task) HasFile(path string) bool {
	return slices.Contains(t.RelatedFiles, path)
}

// AddFile associates a path with the task. Adding an existing path is a
// no-op, so the operation is idempotent.
func (t *Task) AddFile(path string) {
	if !t.HasFile(path) {
		t.RelatedFiles = append(t.RelatedFiles, path)
	}
}

// RemoveFile removes a path association. Removing an absent path is a no-op.
func (t *Task) RemoveFile(path string) {
	t.RelatedFiles = slices.DeleteFunc(t.RelatedFiles, func(p string) bool { return p == path })
}

// SearchText returns the lowercased text the keyword filter matches against:
// title, description, and all comment text.
func (t *Task) SearchText() string {
	var sb strings.Builder
	sb.WriteString(t.Title)
	sb.WriteString("\n")
	sb.WriteString(t.Description)
	for _, c := range t.Comments {
		sb.WriteString("\n")
		sb.WriteString(c.Text)
	}
	return strings.ToLower(sb.String())
}

// Find returns the index of the task with the given id, or -1.
func (l *TaskList) Find(id int) int {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

var validate = validator.New()

// ValidateStruct performs tag-based validation on any model struct. It covers
// only static constraints; vocabulary membership is checked at write time
// against the configured sets.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field %s failed rule %s", e.StructNamespace(), e.Tag()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
