package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindMatching(t *testing.T) {
	err := NewNotFoundError("task", 42)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "42")
}

func TestErrorMatchingThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading store: %w", NewCorruptStoreError("tasks.json", errors.New("unexpected EOF")))

	assert.True(t, errors.Is(err, ErrCorruptStore))
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestInvalidValueErrorListsValidSet(t *testing.T) {
	err := NewInvalidValueError("status", "bogus", []string{"todo", "done"})

	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Contains(t, err.Error(), "bogus")
	assert.Contains(t, err.Error(), "todo, done")
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("title", "title is required")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "title", err.Field)
}

func TestCorruptStoreErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("invalid character '}'")
	err := NewCorruptStoreError("tasks.json", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestVocabularyChecks(t *testing.T) {
	v := NewVocabulary(VocabularyConfig{
		Statuses:   []string{"todo", "doing"},
		Categories: []string{"feature"},
		Priorities: []string{"high"},
		Efforts:    []string{"small"},
	})

	assert.NoError(t, v.CheckStatus("todo"))
	assert.NoError(t, v.CheckCategory("feature"))

	err := v.CheckStatus("done")
	assert.True(t, errors.Is(err, ErrInvalidValue))

	assert.Error(t, v.CheckPriority("low"))
	assert.Error(t, v.CheckEffort("xl"))
}
