package store

import "github.com/taskforge/taskforge/models"

// Snapshot is the full persisted state: both task partitions plus the
// journal log. Components mutate a snapshot inside Store.Mutate and never
// hold one across operations.
type Snapshot struct {
	Tasks   models.TaskList
	Archive models.ArchiveList
	Journal models.JournalLog

	// ActiveFirst flips the document write order for this save. The default
	// (archive first) makes a crash during an archive operation leave the task
	// duplicated rather than dropped; a restore sets ActiveFirst so the same
	// holds in the other direction. Load resolves duplicates in favor of the
	// archive partition.
	ActiveFirst bool
}

// Store defines the interface for durable task, archive, and journal
// persistence. All mutations go through Mutate's load-mutate-save cycle;
// direct writes to the backing files are disallowed.
type Store interface {
	// Load reads all three documents. An absent file yields an empty,
	// initialized collection; a malformed file yields a CorruptStoreError
	// carrying the parse failure.
	Load() (*Snapshot, error)

	// Mutate runs fn on a freshly loaded snapshot under the advisory file
	// lock and persists the result atomically. When fn returns an error
	// nothing is written.
	Mutate(fn func(*Snapshot) error) error

	// LastModified returns an opaque marker that changes whenever any
	// backing document changes. Used as a cache-invalidation fingerprint
	// component.
	LastModified() (string, error)

	// Backup copies the raw documents into the destination directory.
	Backup(destinationPath string) error

	// Close releases the file lock.
	Close() error
}
