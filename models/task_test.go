package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddFileIsIdempotent(t *testing.T) {
	task := Task{}

	task.AddFile("src/login.js")
	task.AddFile("src/login.js")

	assert.Equal(t, []string{"src/login.js"}, task.RelatedFiles)
}

func TestRemoveFileAbsentIsNoOp(t *testing.T) {
	task := Task{RelatedFiles: []string{"a.go"}}

	task.RemoveFile("b.go")
	assert.Equal(t, []string{"a.go"}, task.RelatedFiles)

	task.RemoveFile("a.go")
	assert.Empty(t, task.RelatedFiles)
}

func TestSearchTextCoversTitleDescriptionAndComments(t *testing.T) {
	task := Task{
		Title:       "Fix Login Bug",
		Description: "Session expires too early",
		Comments:    []Comment{{Text: "Root Cause: stale token"}},
	}

	text := task.SearchText()

	assert.Contains(t, text, "fix login bug")
	assert.Contains(t, text, "session expires")
	assert.Contains(t, text, "stale token")
}

func TestTaskListFind(t *testing.T) {
	list := TaskList{Tasks: []Task{{ID: 1}, {ID: 3}}}

	assert.Equal(t, 0, list.Find(1))
	assert.Equal(t, 1, list.Find(3))
	assert.Equal(t, -1, list.Find(2))
}

func TestValidateStructRejectsMissingTitle(t *testing.T) {
	now := time.Now()
	task := Task{ID: 1, CreatedAt: now, UpdatedAt: now}

	err := ValidateStruct(&task)
	assert.Error(t, err)

	task.Title = "has a title"
	assert.NoError(t, ValidateStruct(&task))
}

func TestValidJournalType(t *testing.T) {
	assert.True(t, ValidJournalType(JournalDecision))
	assert.True(t, ValidJournalType(JournalGitCommit))
	assert.False(t, ValidJournalType("gossip"))
}
