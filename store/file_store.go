package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/taskforge/taskforge/types"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"

	checksumSuffix = ".checksum"
	lockFileName   = ".store.lock"
)

// FileStore implements Store with three documents (tasks, archive, journal)
// in a single directory. It supports JSON, YAML, and TOML encodings and
// serializes the load-mutate-save cycle with an advisory file lock.
//
// Saves are atomic per document (write temp, rename into place). The archive
// document is always written before the active document so a crash between
// the two writes can only duplicate a task across partitions, never lose it;
// load reconciles duplicates by treating archive membership as authoritative.
type FileStore struct {
	dir         string
	format      string
	tasksPath   string
	archivePath string
	journalPath string
	flk         *flock.Flock
}

// NewFileStore creates an uninitialized FileStore; Initialize must be called
// before any other operation.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Initialize configures the store directory, file names, and encoding, and
// creates the directory if needed.
func (s *FileStore) Initialize(dir string, data types.DataConfig) error {
	format := strings.ToLower(data.Format)
	switch format {
	case formatJSON, formatYAML, formatTOML:
	default:
		return fmt.Errorf("unsupported data format: %s (supported: json, yaml, toml)", data.Format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	s.dir = dir
	s.format = format
	s.tasksPath = filepath.Join(dir, data.TasksFile)
	s.archivePath = filepath.Join(dir, data.ArchiveFile)
	s.journalPath = filepath.Join(dir, data.JournalFile)
	s.flk = flock.New(filepath.Join(dir, lockFileName))
	return nil
}

// Load reads all three documents under the file lock.
func (s *FileStore) Load() (*Snapshot, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()
	return s.loadInternal()
}

// Mutate runs fn on a freshly loaded snapshot and persists the result.
// Nothing is written when fn fails, so a mutation is never partially
// applied (validate-then-commit).
func (s *FileStore) Mutate(fn func(*Snapshot) error) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire store lock: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	snap, err := s.loadInternal()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.saveInternal(snap)
}

// loadInternal assumes the lock is held.
func (s *FileStore) loadInternal() (*Snapshot, error) {
	snap := &Snapshot{}
	if err := s.readDocument(s.tasksPath, &snap.Tasks); err != nil {
		return nil, err
	}
	if err := s.readDocument(s.archivePath, &snap.Archive); err != nil {
		return nil, err
	}
	if err := s.readDocument(s.journalPath, &snap.Journal); err != nil {
		return nil, err
	}
	reconcile(snap)
	return snap, nil
}

// reconcile drops active tasks whose id also appears in the archive
// partition. A crash between the archive write and the active write during
// an archive operation leaves the task in both; archive membership wins.
func reconcile(snap *Snapshot) {
	if len(snap.Archive.Archived) == 0 {
		return
	}
	archived := make(map[int]struct{}, len(snap.Archive.Archived))
	for _, a := range snap.Archive.Archived {
		archived[a.ID] = struct{}{}
	}
	kept := snap.Tasks.Tasks[:0]
	for _, t := range snap.Tasks.Tasks {
		if _, dup := archived[t.ID]; !dup {
			kept = append(kept, t)
		}
	}
	snap.Tasks.Tasks = kept
}

// saveInternal writes the archive document before the active document (or
// the reverse when the mutation asked for ActiveFirst), then the journal.
// Each write is atomic (temp file + rename).
func (s *FileStore) saveInternal(snap *Snapshot) error {
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
	snap.Tasks.NextHint = maxID + 1

	first, firstDoc := s.archivePath, any(&snap.Archive)
	second, secondDoc := s.tasksPath, any(&snap.Tasks)
	if snap.ActiveFirst {
		first, firstDoc, second, secondDoc = second, secondDoc, first, firstDoc
	}
	if err := s.writeDocument(first, firstDoc); err != nil {
		return err
	}
	if err := s.writeDocument(second, secondDoc); err != nil {
		return err
	}
	return s.writeDocument(s.journalPath, &snap.Journal)
}

func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// readDocument reads one document, verifying its checksum sidecar when
// present. Absent and empty files yield the zero-value (empty) collection;
// any parse or checksum failure is a CorruptStoreError carrying the cause.
func (s *FileStore) readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}

	checksumPath := path + checksumSuffix
	if expected, err := os.ReadFile(checksumPath); err == nil {
		want := strings.TrimSpace(string(expected))
		if got := calculateChecksum(data); got != want {
			return types.NewCorruptStoreError(path,
				fmt.Errorf("checksum mismatch: expected %s, got %s", want, got))
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read checksum file %s: %w", checksumPath, err)
	}

	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return types.NewCorruptStoreError(path, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return types.NewCorruptStoreError(path, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return types.NewCorruptStoreError(path, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
	return nil
}

// writeDocument marshals v and writes it atomically: temp file, then rename,
// then the checksum sidecar. A crash mid-write never leaves a half-written
// document visible to readers.
func (s *FileStore) writeDocument(path string, v any) error {
	var data []byte
	var err error
	switch s.format {
	case formatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(v)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encErr := toml.NewEncoder(buf).Encode(v); encErr != nil {
			err = encErr
		} else {
			data = buf.Bytes()
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal %s as %s: %w", path, s.format, err)
	}

	tmpPath := path + ".tmp"
	defer func() { _ = os.Remove(tmpPath) }()
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s into place: %w", tmpPath, err)
	}

	checksumPath := path + checksumSuffix
	tmpChecksum := checksumPath + ".tmp"
	defer func() { _ = os.Remove(tmpChecksum) }()
	if err := os.WriteFile(tmpChecksum, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write checksum file %s: %w", tmpChecksum, err)
	}
	if err := os.Rename(tmpChecksum, checksumPath); err != nil {
		return fmt.Errorf("failed to rename checksum file into place: %w", err)
	}
	return nil
}

// LastModified builds a marker from the mtime and size of each document.
// Any successful save changes at least one component, so the marker doubles
// as a natural cache-invalidation key.
func (s *FileStore) LastModified() (string, error) {
	var sb strings.Builder
	for _, path := range []string{s.tasksPath, s.archivePath, s.journalPath} {
		fi, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				sb.WriteString(filepath.Base(path))
				sb.WriteString("=absent;")
				continue
			}
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		fmt.Fprintf(&sb, "%s=%d:%d;", filepath.Base(path), fi.ModTime().UnixNano(), fi.Size())
	}
	return sb.String(), nil
}

// Backup copies the raw documents into the destination directory.
func (s *FileStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire store lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := os.MkdirAll(destinationPath, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", destinationPath, err)
	}
	for _, path := range []string{s.tasksPath, s.archivePath, s.journalPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to read %s for backup: %w", path, err)
		}
		dest := filepath.Join(destinationPath, filepath.Base(path))
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("failed to write backup file %s: %w", dest, err)
		}
	}
	return nil
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

var _ Store = (*FileStore)(nil)
