// Package contextgen assembles the bounded-size context document handed to
// AI assistants. Output is deterministic: identical scope, verbosity, and
// store state render byte-identical documents, so prompts are reproducible
// and cacheable.
package contextgen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/taskforge/taskforge/internal/query"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/store"
	"github.com/taskforge/taskforge/types"
)

// Verbosity levels. Brief renders one line per task; normal adds description
// and file associations; full adds comments.
const (
	VerbosityBrief  = "brief"
	VerbosityNormal = "normal"
	VerbosityFull   = "full"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const truncationMarker = "\n[context truncated to size budget]"

// minBudget mirrors the configuration floor, so a budget supplied directly
// on a request (bypassing config validation) cannot shrink the document
// below the truncation marker itself.
const minBudget = 256

// Request scopes one context build. TaskID and File are optional scopes; when
// both are zero-valued the default working set (active statuses plus recently
// updated tasks) is used. Budget overrides the configured byte cap when
// positive; values below 256 are rejected. The budget bounds the rendered
// context body; the JSON format's envelope adds a small fixed framing on top.
type Request struct {
	TaskID    int
	File      string
	Verbosity string
	Format    string
	Budget    int
}

// Builder renders context documents. Rendered output is cached keyed by a
// fingerprint of the request plus the store's last-modified marker, so any
// store mutation invalidates naturally with no explicit invalidation call.
type Builder struct {
	store  store.Store
	cfg    types.ContextConfig
	active map[string]struct{}
	cache  *lru.Cache[string, string]
	now    func() time.Time
}

// NewBuilder wires a Builder from loaded configuration.
func NewBuilder(st store.Store, cfg types.AppConfig) (*Builder, error) {
	cache, err := lru.New[string, string](cfg.Context.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create context cache: %w", err)
	}
	active := make(map[string]struct{}, len(cfg.Vocabulary.ActiveStatuses))
	for _, s := range cfg.Vocabulary.ActiveStatuses {
		active[s] = struct{}{}
	}
	return &Builder{
		store:  st,
		cfg:    cfg.Context,
		active: active,
		cache:  cache,
		now:    time.Now,
	}, nil
}

// Build renders the context document for req, serving from cache when the
// store has not changed since the last identical request.
func (b *Builder) Build(req Request) (string, error) {
	if err := normalize(&req, b.cfg.Budget); err != nil {
		return "", err
	}

	marker, err := b.store.LastModified()
	if err != nil {
		return "", err
	}
	key := fingerprint(req, marker)
	if doc, ok := b.cache.Get(key); ok {
		return doc, nil
	}

	snap, err := b.store.Load()
	if err != nil {
		return "", err
	}
	tasks, entries, err := b.selectWorkingSet(snap, req)
	if err != nil {
		return "", err
	}

	body := renderBody(tasks, entries, req.Verbosity)
	body, truncated := truncate(body, req.Budget)

	doc := body
	if req.Format == FormatJSON {
		doc, err = wrapJSON(body, truncated, len(tasks), len(entries))
		if err != nil {
			return "", err
		}
	}
	b.cache.Add(key, doc)
	return doc, nil
}

func normalize(req *Request, defaultBudget int) error {
	if req.Verbosity == "" {
		req.Verbosity = VerbosityNormal
	}
	switch req.Verbosity {
	case VerbosityBrief, VerbosityNormal, VerbosityFull:
	default:
		return types.NewInvalidValueError("verbosity", req.Verbosity,
			[]string{VerbosityBrief, VerbosityNormal, VerbosityFull})
	}
	if req.Format == "" {
		req.Format = FormatMarkdown
	}
	switch req.Format {
	case FormatMarkdown, FormatJSON:
	default:
		return types.NewInvalidValueError("format", req.Format, []string{FormatMarkdown, FormatJSON})
	}
	if req.Budget <= 0 {
		req.Budget = defaultBudget
	}
	if req.Budget < minBudget {
		return types.NewValidationError("budget",
			fmt.Sprintf("size budget must be at least %d bytes", minBudget))
	}
	return nil
}

// fingerprint hashes the request parameters together with the store marker.
func fingerprint(req Request, storeMarker string) string {
	h := sha256.New()
	fmt.Fprintf(h, "task=%d|file=%s|verbosity=%s|format=%s|budget=%d|store=%s",
		req.TaskID, req.File, req.Verbosity, req.Format, req.Budget, storeMarker)
	return hex.EncodeToString(h.Sum(nil))
}

// selectWorkingSet resolves the tasks and journal entries the document
// covers. Scoped requests take the named task (plus its journal entries) or
// the tasks referencing a file; unscoped requests take every task in an
// active status plus anything updated inside the recent window, with the
// journal capped at the configured limit.
func (b *Builder) selectWorkingSet(snap *store.Snapshot, req Request) ([]models.Task, []models.JournalEntry, error) {
	switch {
	case req.TaskID > 0:
		idx := snap.Tasks.Find(req.TaskID)
		if idx < 0 {
			return nil, nil, types.NewNotFoundError("task", req.TaskID)
		}
		return []models.Task{snap.Tasks.Tasks[idx]}, journalForTask(snap.Journal.Entries, req.TaskID), nil

	case req.File != "":
		res, err := query.Run(snap.Tasks.Tasks, query.Filter{File: req.File}, query.Page{})
		if err != nil {
			return nil, nil, err
		}
		var entries []models.JournalEntry
		for _, t := range res.Items {
			entries = append(entries, journalForTask(snap.Journal.Entries, t.ID)...)
		}
		return res.Items, newestFirst(entries, b.cfg.JournalLimit), nil

	default:
		cutoff := b.now().UTC().AddDate(0, 0, -b.cfg.RecentWindowDays)
		seen := make(map[int]struct{})
		var tasks []models.Task
		for i := range snap.Tasks.Tasks {
			t := snap.Tasks.Tasks[i]
			_, isActive := b.active[t.Status]
			if isActive || !t.UpdatedAt.Before(cutoff) {
				if _, dup := seen[t.ID]; !dup {
					seen[t.ID] = struct{}{}
					tasks = append(tasks, t)
				}
			}
		}
		return tasks, newestFirst(snap.Journal.Entries, b.cfg.JournalLimit), nil
	}
}

func journalForTask(entries []models.JournalEntry, taskID int) []models.JournalEntry {
	var out []models.JournalEntry
	for _, e := range entries {
		if e.RelatedTaskID == taskID {
			out = append(out, e)
		}
	}
	return newestFirst(out, 0)
}

// newestFirst orders entries by timestamp descending (id descending on ties)
// and caps the result when limit is positive.
func newestFirst(entries []models.JournalEntry, limit int) []models.JournalEntry {
	out := make([]models.JournalEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// renderBody produces the markdown document: tasks by id ascending, then
// journal entries newest-first. Timestamps render in RFC 3339 UTC so the
// output never depends on the local timezone.
func renderBody(tasks []models.Task, entries []models.JournalEntry, verbosity string) string {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var sb strings.Builder
	sb.WriteString("# Task Context\n")
	sb.WriteString("\n## Tasks\n")
	if len(sorted) == 0 {
		sb.WriteString("\n(no tasks in working set)\n")
	}
	for i := range sorted {
		renderTask(&sb, &sorted[i], verbosity)
	}

	if len(entries) > 0 {
		sb.WriteString("\n## Journal\n")
		for i := range entries {
			renderEntry(&sb, &entries[i], verbosity)
		}
	}
	return sb.String()
}

func renderTask(sb *strings.Builder, t *models.Task, verbosity string) {
	fmt.Fprintf(sb, "\n### [%d] %s\n", t.ID, t.Title)
	fmt.Fprintf(sb, "status: %s | category: %s | priority: %s | effort: %s\n",
		t.Status, t.Category, t.Priority, t.Effort)
	if verbosity == VerbosityBrief {
		return
	}
	if t.Description != "" {
		fmt.Fprintf(sb, "%s\n", t.Description)
	}
	if len(t.RelatedFiles) > 0 {
		fmt.Fprintf(sb, "files: %s\n", strings.Join(t.RelatedFiles, ", "))
	}
	if t.Branch != "" {
		fmt.Fprintf(sb, "branch: %s\n", t.Branch)
	}
	if verbosity != VerbosityFull {
		return
	}
	for _, c := range t.Comments {
		fmt.Fprintf(sb, "- comment (%s, %s): %s\n",
			c.Author, c.Timestamp.UTC().Format(time.RFC3339), c.Text)
	}
}

func renderEntry(sb *strings.Builder, e *models.JournalEntry, verbosity string) {
	fmt.Fprintf(sb, "\n- [%s] %s", e.Type, e.Timestamp.UTC().Format(time.RFC3339))
	if e.RelatedTaskID > 0 {
		fmt.Fprintf(sb, " (task %d)", e.RelatedTaskID)
	}
	sb.WriteString("\n")
	text := e.Text
	if verbosity == VerbosityBrief {
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = text[:idx]
		}
	}
	fmt.Fprintf(sb, "  %s\n", text)
	if verbosity == VerbosityFull && len(e.Tags) > 0 {
		fmt.Fprintf(sb, "  tags: %s\n", strings.Join(e.Tags, ", "))
	}
}

// truncate cuts the tail of the document to fit the byte budget and appends
// the truncation marker. Tasks render before journal entries and journal
// entries render newest-first, so the tail is always the least relevant
// content. The cut never splits a UTF-8 sequence. normalize guarantees the
// budget exceeds the marker length, so the result never overruns the budget.
func truncate(body string, budget int) (string, bool) {
	if len(body) <= budget {
		return body, false
	}
	keep := budget - len(truncationMarker)
	for keep > 0 && !utf8.RuneStart(body[keep]) {
		keep--
	}
	return body[:keep] + truncationMarker, true
}

type jsonDocument struct {
	Context      string `json:"context"`
	Truncated    bool   `json:"truncated"`
	TaskCount    int    `json:"taskCount"`
	JournalCount int    `json:"journalCount"`
}

func wrapJSON(body string, truncated bool, taskCount, journalCount int) (string, error) {
	out, err := json.MarshalIndent(jsonDocument{
		Context:      body,
		Truncated:    truncated,
		TaskCount:    taskCount,
		JournalCount: journalCount,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode context document: %w", err)
	}
	return string(out), nil
}
