package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/sknn/internal/keyring"
	"github.com/julianstephens/sknn/internal/logger"
	"github.com/julianstephens/sknn/internal/routine"
	"github.com/julianstephens/sknn/internal/storage/postgres"
)

var hints = []struct {
	target error
	hint   string
}{
	{routine.ErrNotFound, "Run 'sknn list --show-ids' to see routine IDs."},
	{routine.ErrEmptyName, "Give the step a name, e.g. sknn add \"Toner\" --time Night."},
	{routine.ErrInvalidTimeOfDay, "Use one of Morning, Night, Both or Weekly."},
	{postgres.ErrEmbeddedCredentials, "Use 'sknn keyring set', the SKNN_DB_CONNECTION variable, or a .pgpass file for the password."},
	{keyring.ErrKeyringUnavailable, "Export SKNN_DB_CONNECTION instead of using the OS keyring."},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a suggested next step for well-known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error, prints it with any hint, and exits with code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits with code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
