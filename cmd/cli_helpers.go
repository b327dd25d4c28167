package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
	"github.com/taskforge/taskforge/models"
	"github.com/taskforge/taskforge/store"
)

// ErrNoTasksFound is returned when an interactive selection is attempted but
// no tasks are available.
var ErrNoTasksFound = errors.New("no tasks found matching your criteria")

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseTaskID parses the positional id argument.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q: expected a positive integer", arg)
	}
	return id, nil
}

// selectTaskInteractive presents a prompt to the user to select a task from
// the active partition, with fuzzy search over title and id.
func selectTaskInteractive(st store.Store, label string) (models.Task, error) {
	snap, err := st.Load()
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to load tasks for selection: %w", err)
	}
	tasks := snap.Tasks.Tasks
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} (ID: {{ .ID }}, Status: {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }} (ID: {{ .ID }})`,
		Details: `
--------- Task Details ----------
{{ "ID:\t" | faint }} {{ .ID }}
{{ "Title:\t" | faint }} {{ .Title }}
{{ "Status:\t" | faint }} {{ .Status }}
{{ "Priority:\t" | faint }} {{ .Priority }}`,
	}

	searcher := func(input string, index int) bool {
		t := tasks[index]
		input = strings.ToLower(input)
		return strings.Contains(strings.ToLower(t.Title), input) ||
			strings.Contains(strconv.Itoa(t.ID), input)
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Searcher:  searcher,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, err // includes promptui.ErrInterrupt
	}
	return tasks[i], nil
}

// promptString asks for a single line of input, enforcing required fields.
func promptString(label string, required bool) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if required && strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}
	return prompt.Run()
}

// promptSelect asks the user to pick one value from a vocabulary set.
func promptSelect(label string, items []string) (string, error) {
	prompt := promptui.Select{Label: label, Items: items}
	_, value, err := prompt.Run()
	return value, err
}
