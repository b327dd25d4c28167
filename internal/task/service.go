// Package task implements task creation, field mutation, journaling, and
// archival on top of the store's load-mutate-save cycle. All invariant
// enforcement (vocabulary membership, id uniqueness, append-only comments)
// lives here; the CLI layer only translates flags into calls.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/store"
	"github.com/taskforge/taskforge/types"
)

// Service is the mutation engine. It owns no state of its own; every
// operation re-reads the persisted snapshot so out-of-band edits to the
// store are picked up rather than clobbered.
type Service struct {
	store    store.Store
	vocab    types.Vocabulary
	defaults types.DefaultsConfig
	author   string

	// now is swappable for tests.
	now func() time.Time
}

// NewService wires a Service from loaded configuration.
func NewService(st store.Store, cfg types.AppConfig) *Service {
	return &Service{
		store:    st,
		vocab:    types.NewVocabulary(cfg.Vocabulary),
		defaults: cfg.Vocabulary.Defaults,
		author:   cfg.Author,
		now:      time.Now,
	}
}

// NextTaskID returns max(id across active and archived partitions) + 1, or 1
// on an empty store. Deriving from the data instead of a counter file means a
// hand-edited store self-heals instead of colliding.
func NextTaskID(snap *store.Snapshot) int {
	maxID := 0
	for _, t := range snap.Tasks.Tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	for _, a := range snap.Archive.Archived {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}

// NextJournalID allocates the next journal entry id the same way.
func NextJournalID(snap *store.Snapshot) int {
	maxID := 0
	for _, e := range snap.Journal.Entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// CreateRequest carries the caller-supplied fields for a new task. Unset
// enumerated fields take the configured defaults.
type CreateRequest struct {
	Title        string
	Description  string
	Status       string
	Category     string
	Priority     string
	Effort       string
	Author       string
	Branch       string
	RelatedFiles []string
}

// Create validates the request, fills defaults, allocates an id, and
// persists the new task. Returns the task as stored.
func (s *Service) Create(req CreateRequest) (models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Task{}, types.NewValidationError("title", "title is required")
	}

	t := models.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Status:       orDefault(req.Status, s.defaults.Status),
		Category:     orDefault(req.Category, s.defaults.Category),
		Priority:     orDefault(req.Priority, s.defaults.Priority),
		Effort:       orDefault(req.Effort, s.defaults.Effort),
		Author:       orDefault(req.Author, s.author),
		Branch:       req.Branch,
	}
	for _, f := range req.RelatedFiles {
		t.AddFile(f)
	}

	if err := s.checkVocabulary(&t); err != nil {
		return models.Task{}, err
	}

	var created models.Task
	err := s.store.Mutate(func(snap *store.Snapshot) error {
		now := s.now().UTC()
		t.ID = NextTaskID(snap)
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := models.ValidateStruct(&t); err != nil {
			return types.NewValidationError("task", err.Error())
		}
		snap.Tasks.Tasks = append(snap.Tasks.Tasks, t)
		created = t
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return created, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (s *Service) checkVocabulary(t *models.Task) error {
	if err := s.vocab.CheckStatus(t.Status); err != nil {
		return err
	}
	if err := s.vocab.CheckCategory(t.Category); err != nil {
		return err
	}
	if err := s.vocab.CheckPriority(t.Priority); err != nil {
		return err
	}
	return s.vocab.CheckEffort(t.Effort)
}

// Updatable fields accepted by UpdateField.
const (
	FieldStatus      = "status"
	FieldCategory    = "category"
	FieldPriority    = "priority"
	FieldEffort      = "effort"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBranch      = "branch"
	FieldComment     = "comment"
	FieldAddFile     = "add-file"
	FieldRemoveFile  = "remove-file"
)

// UpdateFields lists the accepted field names for error messages and help.
var UpdateFields = []string{
	FieldStatus, FieldCategory, FieldPriority, FieldEffort,
	FieldTitle, FieldDescription, FieldBranch,
	FieldComment, FieldAddFile, FieldRemoveFile,
}

// UpdateField applies a single field mutation to an active task. Enumerated
// fields are checked against the configured vocabulary; add-file is
// idempotent and remove-file of an absent path is a no-op. Any status value
// in the vocabulary is reachable from any other: membership is enforced, an
// ordering graph is not. Every successful update refreshes UpdatedAt.
func (s *Service) UpdateField(id int, field, value string) (models.Task, error) {
	var updated models.Task
	err := s.store.Mutate(func(snap *store.Snapshot) error {
		idx := snap.Tasks.Find(id)
		if idx < 0 {
			return types.NewNotFoundError("task", id)
		}
		t := &snap.Tasks.Tasks[idx]

		switch field {
		case FieldStatus:
			if err := s.vocab.CheckStatus(value); err != nil {
				return err
			}
			t.Status = value
		case FieldCategory:
			if err := s.vocab.CheckCategory(value); err != nil {
				return err
			}
			t.Category = value
		case FieldPriority:
			if err := s.vocab.CheckPriority(value); err != nil {
				return err
			}
			t.Priority = value
		case FieldEffort:
			if err := s.vocab.CheckEffort(value); err != nil {
				return err
			}
			t.Effort = value
		case FieldTitle:
			if strings.TrimSpace(value) == "" {
				return types.NewValidationError("title", "title cannot be empty")
			}
			t.Title = strings.TrimSpace(value)
		case FieldDescription:
			t.Description = value
		case FieldBranch:
			t.Branch = value
		case FieldComment:
			if strings.TrimSpace(value) == "" {
				return types.NewValidationError("comment", "comment text cannot be empty")
			}
			t.Comments = append(t.Comments, models.Comment{
				ID:        uuid.NewString(),
				Author:    s.author,
				Timestamp: s.now().UTC(),
				Text:      value,
			})
		case FieldAddFile:
			if value == "" {
				return types.NewValidationError("add-file", "file path cannot be empty")
			}
			t.AddFile(value)
		case FieldRemoveFile:
			t.RemoveFile(value)
		default:
			return types.NewValidationError("field",
				fmt.Sprintf("unknown field %q (valid: %s)", field, strings.Join(UpdateFields, ", ")))
		}

		t.UpdatedAt = s.now().UTC()
		updated = *t
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// Get returns an active task by id.
func (s *Service) Get(id int) (models.Task, error) {
	snap, err := s.store.Load()
	if err != nil {
		return models.Task{}, err
	}
	idx := snap.Tasks.Find(id)
	if idx < 0 {
		return models.Task{}, types.NewNotFoundError("task", id)
	}
	return snap.Tasks.Tasks[idx], nil
}

// AddJournalEntry appends an immutable record to the journal log. The task
// reference is weak: it is recorded as given and never checked against the
// task partitions.
func (s *Service) AddJournalEntry(typ models.JournalType, text string, tags []string, relatedTaskID int) (models.JournalEntry, error) {
	if !models.ValidJournalType(typ) {
		valid := make([]string, len(models.JournalTypes))
		for i, t := range models.JournalTypes {
			valid[i] = string(t)
		}
		return models.JournalEntry{}, types.NewInvalidValueError("type", string(typ), valid)
	}
	if strings.TrimSpace(text) == "" {
		return models.JournalEntry{}, types.NewValidationError("text", "journal text is required")
	}

	var entry models.JournalEntry
	err := s.store.Mutate(func(snap *store.Snapshot) error {
		entry = models.JournalEntry{
			ID:            NextJournalID(snap),
			Type:          typ,
			Text:          text,
			Tags:          tags,
			Timestamp:     s.now().UTC(),
			RelatedTaskID: relatedTaskID,
		}
		snap.Journal.Entries = append(snap.Journal.Entries, entry)
		return nil
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}
