package query

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/types"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 3, Title: "Write docs", Status: "todo", Category: "docs", Priority: "p3-low", Author: "ana"},
		{ID: 1, Title: "Fix login bug", Description: "session expiry", Status: "in-progress",
			Category: "bugfix", Priority: "p1-high", Author: "ben", Branch: "fix/login",
			RelatedFiles: []string{"src/login.js"},
			Comments:     []models.Comment{{Text: "token was stale"}}},
		{ID: 2, Title: "Refactor store", Status: "todo", Category: "refactor", Priority: "p2-medium", Author: "ana"},
	}
}

func TestRunNoFilterSortsByID(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{}, Page{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 1, res.PageCount)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 1, res.Items[0].ID)
	assert.Equal(t, 2, res.Items[1].ID)
	assert.Equal(t, 3, res.Items[2].ID)
}

func TestRunFiltersAreConjunctive(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{Status: "todo", Author: "ana"}, Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)

	res, err = Run(sampleTasks(), Filter{Status: "todo", Author: "ben"}, Page{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
	assert.Zero(t, res.PageCount)
}

func TestRunKeywordMatchesCommentsCaseInsensitively(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{Keyword: "STALE"}, Page{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].ID)
}

func TestRunFileFilter(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{File: "src/login.js"}, Page{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].ID)

	res, err = Run(sampleTasks(), Filter{File: "src/other.js"}, Page{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestRunBranchFilter(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{Branch: "fix/login"}, Page{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].ID)
}

func TestRunPagination(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{}, Page{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, 2, res.PageCount)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Items[0].ID)

	res, err = Run(sampleTasks(), Filter{}, Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 3, res.Items[0].ID)
}

func TestRunPageBeyondLastIsEmptyNotError(t *testing.T) {
	res, err := Run(sampleTasks(), Filter{}, Page{Number: 3, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, 3, res.TotalCount)
}

func TestRunInvalidPagination(t *testing.T) {
	_, err := Run(sampleTasks(), Filter{}, Page{Number: 0, Size: 2})
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = Run(sampleTasks(), Filter{}, Page{Number: 1, Size: 0})
	assert.True(t, errors.Is(err, types.ErrValidation))
}

func TestRunEmptyInput(t *testing.T) {
	res, err := Run(nil, Filter{Status: "todo"}, Page{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.TotalCount)
	assert.Zero(t, res.PageCount)
}

func TestAggregate(t *testing.T) {
	tasks := sampleTasks()
	archived := []models.ArchivedTask{{Task: models.Task{ID: 9}}}
	journal := []models.JournalEntry{{ID: 1}, {ID: 2}}

	stats := Aggregate(tasks, archived, journal)

	assert.Equal(t, 3, stats.TotalActive)
	assert.Equal(t, 1, stats.TotalArchived)
	assert.Equal(t, 2, stats.TotalJournal)
	assert.Equal(t, 2, stats.ByStatus["todo"])
	assert.Equal(t, 1, stats.ByStatus["in-progress"])
	assert.Equal(t, 1, stats.ByCategory["bugfix"])
	assert.Equal(t, 1, stats.ByPriority["p1-high"])
}

func TestChangesMapsFilesToTasks(t *testing.T) {
	changes := Changes(sampleTasks(), []string{"src/login.js", "README.md"})

	require.Len(t, changes, 2)
	assert.Equal(t, []int{1}, changes[0].TaskIDs)
	assert.Empty(t, changes[1].TaskIDs)
}

func TestRecentOrdersByUpdateTime(t *testing.T) {
	base := time.Now().UTC()
	tasks := []models.Task{
		{ID: 1, UpdatedAt: base.Add(-48 * time.Hour)},
		{ID: 2, UpdatedAt: base.Add(-1 * time.Hour)},
		{ID: 3, UpdatedAt: base.Add(-30 * time.Hour)},
	}

	recent := Recent(tasks, base.Add(-36*time.Hour))

	require.Len(t, recent, 2)
	assert.Equal(t, 2, recent[0].ID)
	assert.Equal(t, 3, recent[1].ID)
}
