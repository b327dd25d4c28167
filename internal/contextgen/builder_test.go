package contextgen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/store"
	"github.com/taskforge/taskforge/types"
)

func testConfig() types.AppConfig {
	return types.AppConfig{
		Author: "tester",
		Vocabulary: types.VocabularyConfig{
			Statuses:   models.DefaultStatuses,
			Categories: models.DefaultCategories,
			Priorities: models.DefaultPriorities,
			Efforts:    models.DefaultEfforts,
			Defaults: types.DefaultsConfig{
				Status:   models.StatusTodo,
				Category: "feature",
				Priority: "p2-medium",
				Effort:   "3-medium",
			},
			ActiveStatuses: []string{models.StatusTodo, models.StatusInProgress, models.StatusReview, models.StatusBlocked},
		},
		Context: types.ContextConfig{
			Budget:           16384,
			RecentWindowDays: 7,
			JournalLimit:     20,
			CacheSize:        8,
		},
	}
}

func newTestBuilder(t *testing.T) (*Builder, *task.Service, store.Store) {
	t.Helper()
	st := store.NewFileStore()
	err := st.Initialize(t.TempDir(), types.DataConfig{
		TasksFile:   "tasks.json",
		ArchiveFile: "archive.json",
		JournalFile: "journal.json",
		Format:      "json",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := testConfig()
	b, err := NewBuilder(st, cfg)
	require.NoError(t, err)
	return b, task.NewService(st, cfg), st
}

func TestBuildIsByteIdenticalWithoutMutation(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	_, err := svc.Create(task.CreateRequest{Title: "Fix login bug", Description: "expiry"})
	require.NoError(t, err)
	_, err = svc.AddJournalEntry(models.JournalProgress, "started digging", nil, 1)
	require.NoError(t, err)

	req := Request{Verbosity: VerbosityFull}
	first, err := b.Build(req)
	require.NoError(t, err)
	second, err := b.Build(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Fix login bug")
	assert.Contains(t, first, "started digging")
}

func TestBuildCacheInvalidatesOnStoreMutation(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	_, err := svc.Create(task.CreateRequest{Title: "before"})
	require.NoError(t, err)

	first, err := b.Build(Request{})
	require.NoError(t, err)

	// File mtime resolution can be coarse; make sure the marker moves.
	time.Sleep(10 * time.Millisecond)
	_, err = svc.Create(task.CreateRequest{Title: "after mutation"})
	require.NoError(t, err)

	second, err := b.Build(Request{})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "after mutation")
}

func TestBuildTaskScope(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	one, err := svc.Create(task.CreateRequest{Title: "scoped task"})
	require.NoError(t, err)
	_, err = svc.Create(task.CreateRequest{Title: "other task"})
	require.NoError(t, err)
	_, err = svc.AddJournalEntry(models.JournalDecision, "relevant note", nil, one.ID)
	require.NoError(t, err)
	_, err = svc.AddJournalEntry(models.JournalDecision, "unrelated note", nil, 2)
	require.NoError(t, err)

	doc, err := b.Build(Request{TaskID: one.ID})
	require.NoError(t, err)

	assert.Contains(t, doc, "scoped task")
	assert.NotContains(t, doc, "other task")
	assert.Contains(t, doc, "relevant note")
	assert.NotContains(t, doc, "unrelated note")
}

func TestBuildTaskScopeNotFound(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	_, err := b.Build(Request{TaskID: 99})
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestBuildFileScope(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	one, err := svc.Create(task.CreateRequest{Title: "login work"})
	require.NoError(t, err)
	_, err = svc.UpdateField(one.ID, "add-file", "src/login.js")
	require.NoError(t, err)
	_, err = svc.Create(task.CreateRequest{Title: "unrelated work"})
	require.NoError(t, err)

	doc, err := b.Build(Request{File: "src/login.js"})
	require.NoError(t, err)

	assert.Contains(t, doc, "login work")
	assert.NotContains(t, doc, "unrelated work")
}

func TestBuildExcludesDoneTasksOutsideWindow(t *testing.T) {
	b, svc, st := newTestBuilder(t)
	one, err := svc.Create(task.CreateRequest{Title: "stale finished work"})
	require.NoError(t, err)
	_, err = svc.UpdateField(one.ID, "status", models.StatusDone)
	require.NoError(t, err)
	_, err = svc.Create(task.CreateRequest{Title: "current work"})
	require.NoError(t, err)

	// Age the done task past the recent window.
	err = st.Mutate(func(snap *store.Snapshot) error {
		idx := snap.Tasks.Find(one.ID)
		snap.Tasks.Tasks[idx].UpdatedAt = time.Now().UTC().AddDate(0, 0, -30)
		return nil
	})
	require.NoError(t, err)

	doc, err := b.Build(Request{})
	require.NoError(t, err)

	assert.Contains(t, doc, "current work")
	assert.NotContains(t, doc, "stale finished work")
}

func TestBuildTruncatesToBudget(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	long := strings.Repeat("all work and no play makes a dull task. ", 50)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(task.CreateRequest{Title: "padded task", Description: long})
		require.NoError(t, err)
	}

	doc, err := b.Build(Request{Budget: 512})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(doc), 512)
	assert.True(t, strings.HasSuffix(doc, truncationMarker))
	// The head of the document (most relevant content) survives.
	assert.Contains(t, doc, "# Task Context")
}

func TestBuildJSONFormat(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	_, err := svc.Create(task.CreateRequest{Title: "json task"})
	require.NoError(t, err)

	doc, err := b.Build(Request{Format: FormatJSON})
	require.NoError(t, err)

	var parsed jsonDocument
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Contains(t, parsed.Context, "json task")
	assert.False(t, parsed.Truncated)
	assert.Equal(t, 1, parsed.TaskCount)
}

func TestBuildRejectsBadSelectors(t *testing.T) {
	b, _, _ := newTestBuilder(t)

	_, err := b.Build(Request{Verbosity: "chatty"})
	assert.True(t, errors.Is(err, types.ErrInvalidValue))

	_, err = b.Build(Request{Format: "xml"})
	assert.True(t, errors.Is(err, types.ErrInvalidValue))
}

func TestBuildRejectsTinyBudget(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	_, err := svc.Create(task.CreateRequest{Title: "any task"})
	require.NoError(t, err)

	// Smaller than the truncation marker: the document could never fit.
	_, err = b.Build(Request{Budget: 10})
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = b.Build(Request{Budget: minBudget - 1})
	assert.True(t, errors.Is(err, types.ErrValidation))

	doc, err := b.Build(Request{Budget: minBudget})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(doc), minBudget)
}

func TestBuildBriefOmitsDescriptions(t *testing.T) {
	b, svc, _ := newTestBuilder(t)
	_, err := svc.Create(task.CreateRequest{Title: "brief task", Description: "long description body"})
	require.NoError(t, err)

	doc, err := b.Build(Request{Verbosity: VerbosityBrief})
	require.NoError(t, err)

	assert.Contains(t, doc, "brief task")
	assert.NotContains(t, doc, "long description body")
}
