package models

import "time"

// JournalType classifies a journal entry.
type JournalType string

const (
	JournalProgress  JournalType = "progress"
	JournalDecision  JournalType = "decision"
	JournalBlocker   JournalType = "blocker"
	JournalLearning  JournalType = "learning"
	JournalGitCommit JournalType = "git-commit"
)

// JournalTypes lists the accepted entry types.
var JournalTypes = []JournalType{JournalProgress, JournalDecision, JournalBlocker, JournalLearning, JournalGitCommit}

// ValidJournalType reports whether t is an accepted entry type.
func ValidJournalType(t JournalType) bool {
	for _, v := range JournalTypes {
		if v == t {
			return true
		}
	}
	return false
}

// JournalEntry is an immutable, append-only log record. RelatedTaskID is a
// weak reference: it may point to an archived or deleted task, and a failed
// lookup is never an error.
type JournalEntry struct {
	ID            int         `json:"id" yaml:"id" toml:"id"`
	Type          JournalType `json:"type" yaml:"type" toml:"type"`
	Text          string      `json:"text" yaml:"text" toml:"text"`
	Tags          []string    `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Timestamp     time.Time   `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	RelatedTaskID int         `json:"relatedTaskId,omitempty" yaml:"relatedTaskId,omitempty" toml:"relatedTaskId,omitempty"`
}

// JournalLog is the journal document: an append-ordered list of entries.
type JournalLog struct {
	Entries []JournalEntry `json:"entries" yaml:"entries" toml:"entries"`
}
