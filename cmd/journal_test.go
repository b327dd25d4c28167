package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge/models"
)

// The add and list subcommands both expose --type with different defaults;
// they must not share a flag variable or the second registration overwrites
// the first default.
func TestJournalTypeFlagDefaults(t *testing.T) {
	addFlag := journalAddCmd.Flags().Lookup("type")
	require.NotNil(t, addFlag)
	assert.Equal(t, string(models.JournalProgress), addFlag.DefValue)
	assert.Equal(t, string(models.JournalProgress), journalAddType)

	listFlag := journalListCmd.Flags().Lookup("type")
	require.NotNil(t, listFlag)
	assert.Equal(t, "", listFlag.DefValue)
	assert.Equal(t, "", journalListType)
}

func TestJournalAddWithoutTypeRecordsProgress(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := executeCommand(t, "journal", "add", "hello world")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded (progress)")

	out, err = executeCommand(t, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "[progress]")
}

func TestJournalListFilters(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "journal", "add", "picked redis", "--type", "decision")
	require.NoError(t, err)
	_, err = executeCommand(t, "journal", "add", "infra outage", "--type", "blocker", "--task", "7")
	require.NoError(t, err)

	out, err := executeCommand(t, "journal", "list", "--type", "blocker")
	require.NoError(t, err)
	assert.Contains(t, out, "infra outage")
	assert.NotContains(t, out, "picked redis")
	assert.Contains(t, out, "(task 7)")
}
