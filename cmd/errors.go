package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/taskforge/taskforge/types"
)

// exitCode maps an error to the process exit status. All domain errors exit
// non-zero; corrupt-store failures get a distinct code so wrappers can tell
// "bad input" from "bad store" apart.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, types.ErrCorruptStore) {
		return 2
	}
	return 1
}

// PrintError prints an error message without exiting, allowing for recovery.
// Verbose mode prints the full technical error instead of the clean message.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}
