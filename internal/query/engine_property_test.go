package query

import (
	"strings"
	"testing"

	"github.com/taskforge/taskforge/models"
	"pgregory.net/rapid"
)

func genTasks(rt *rapid.T) []models.Task {
	n := rapid.IntRange(0, 25).Draw(rt, "num_tasks")
	statuses := []string{"todo", "in-progress", "done"}
	categories := []string{"feature", "bugfix", "docs"}
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = models.Task{
			ID:       i + 1,
			Title:    rapid.StringMatching(`[a-z ]{1,20}`).Draw(rt, "title"),
			Status:   rapid.SampledFrom(statuses).Draw(rt, "status"),
			Category: rapid.SampledFrom(categories).Draw(rt, "category"),
		}
	}
	return tasks
}

// TestPropertyFilterSoundAndComplete verifies that every returned item
// satisfies the filter and every satisfying task is returned.
func TestPropertyFilterSoundAndComplete(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		f := Filter{
			Status:  rapid.SampledFrom([]string{"", "todo", "in-progress", "done"}).Draw(rt, "f_status"),
			Keyword: rapid.SampledFrom([]string{"", "a", "zz"}).Draw(rt, "f_keyword"),
		}

		res, err := Run(tasks, f, Page{})
		if err != nil {
			rt.Fatalf("Run failed: %v", err)
		}

		for _, item := range res.Items {
			if f.Status != "" && item.Status != f.Status {
				rt.Fatalf("item %d has status %q, filter wanted %q", item.ID, item.Status, f.Status)
			}
			if f.Keyword != "" && !strings.Contains(item.SearchText(), f.Keyword) {
				rt.Fatalf("item %d does not contain keyword %q", item.ID, f.Keyword)
			}
		}

		want := 0
		for i := range tasks {
			if f.Matches(&tasks[i]) {
				want++
			}
		}
		if len(res.Items) != want {
			rt.Fatalf("got %d items, %d tasks satisfy the filter", len(res.Items), want)
		}
	})
}

// TestPropertyPaginationPartitionsResults verifies that walking all pages
// reproduces the unpaginated result exactly once each, in order, and that
// the page past the last is empty.
func TestPropertyPaginationPartitionsResults(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := genTasks(rt)
		size := rapid.IntRange(1, 7).Draw(rt, "page_size")

		all, err := Run(tasks, Filter{}, Page{})
		if err != nil {
			rt.Fatalf("Run failed: %v", err)
		}

		var walked []models.Task
		page := 1
		for {
			res, err := Run(tasks, Filter{}, Page{Number: page, Size: size})
			if err != nil {
				rt.Fatalf("Run(page=%d) failed: %v", page, err)
			}
			if len(res.Items) == 0 {
				if page <= res.PageCount {
					rt.Fatalf("page %d of %d came back empty", page, res.PageCount)
				}
				break
			}
			walked = append(walked, res.Items...)
			page++
		}

		if len(walked) != len(all.Items) {
			rt.Fatalf("walked %d items, expected %d", len(walked), len(all.Items))
		}
		for i := range walked {
			if walked[i].ID != all.Items[i].ID {
				rt.Fatalf("position %d: walked id %d, expected %d", i, walked[i].ID, all.Items[i].ID)
			}
		}
	})
}
