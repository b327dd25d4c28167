package models

import "time"

// ArchivedTask is a task moved to the archive partition. The original id is
// preserved so the task can be restored verbatim.
type ArchivedTask struct {
	Task          `yaml:",inline"`
	ArchivedAt    time.Time `json:"archivedAt" yaml:"archivedAt" toml:"archivedAt"`
	ArchiveReason string    `json:"archiveReason,omitempty" yaml:"archiveReason,omitempty" toml:"archiveReason,omitempty"`
}

// ArchiveList is the archive-partition document.
type ArchiveList struct {
	Archived []ArchivedTask `json:"archived" yaml:"archived" toml:"archived"`
}

// Find returns the index of the archived task with the given id, or -1.
func (l *ArchiveList) Find(id int) int {
	for i := range l.Archived {
		if l.Archived[i].ID == id {
			return i
		}
	}
	return -1
}
