package task

import (
	"fmt"
	"sort"

	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/store"
	"github.com/taskforge/taskforge/types"
)

// Archive moves an active task into the archive partition, stamping the
// archive time and optional reason. Both partitions are persisted in one
// save; the store writes the archive document first so a crash mid-save
// duplicates the task instead of dropping it.
func (s *Service) Archive(id int, reason string) (models.ArchivedTask, error) {
	var archived models.ArchivedTask
	err := s.store.Mutate(func(snap *store.Snapshot) error {
		idx := snap.Tasks.Find(id)
		if idx < 0 {
			return types.NewNotFoundError("task", id)
		}
		archived = models.ArchivedTask{
			Task:          snap.Tasks.Tasks[idx],
			ArchivedAt:    s.now().UTC(),
			ArchiveReason: reason,
		}
		snap.Tasks.Tasks = append(snap.Tasks.Tasks[:idx], snap.Tasks.Tasks[idx+1:]...)
		snap.Archive.Archived = append(snap.Archive.Archived, archived)
		return nil
	})
	if err != nil {
		return models.ArchivedTask{}, err
	}
	return archived, nil
}

// Restore moves an archived task back to the active partition with its
// original id, clearing the archive stamps. The id collision check is
// defensive: allocation never reuses archived ids, but a hand-edited store
// could produce one.
func (s *Service) Restore(id int) (models.Task, error) {
	var restored models.Task
	err := s.store.Mutate(func(snap *store.Snapshot) error {
		idx := snap.Archive.Find(id)
		if idx < 0 {
			return types.NewNotFoundError("archived task", id)
		}
		if snap.Tasks.Find(id) >= 0 {
			return types.NewConflictError(fmt.Sprintf("an active task with id %d already exists", id))
		}
		restored = snap.Archive.Archived[idx].Task
		restored.UpdatedAt = s.now().UTC()
		snap.Archive.Archived = append(snap.Archive.Archived[:idx], snap.Archive.Archived[idx+1:]...)
		snap.Tasks.Tasks = append(snap.Tasks.Tasks, restored)
		sort.SliceStable(snap.Tasks.Tasks, func(i, j int) bool {
			return snap.Tasks.Tasks[i].ID < snap.Tasks.Tasks[j].ID
		})
		snap.ActiveFirst = true
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return restored, nil
}

// ListArchived returns the archive partition ordered newest-archived-first.
func (s *Service) ListArchived() ([]models.ArchivedTask, error) {
	snap, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]models.ArchivedTask, len(snap.Archive.Archived))
	copy(out, snap.Archive.Archived)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArchivedAt.After(out[j].ArchivedAt)
	})
	return out, nil
}
