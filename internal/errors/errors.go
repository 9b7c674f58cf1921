package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/goaltrack/internal/logger"
)

// Domain error kinds. Callers match these with errors.Is so the CLI edge can
// attach recovery hints without parsing message text.
var (
	// ErrNotInitialized means a command needs the database before
	// 'goaltrack init' has created it.
	ErrNotInitialized = stderrors.New("storage not initialized, run 'goaltrack init' first")
)

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

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
