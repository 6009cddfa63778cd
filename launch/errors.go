package launch

import (
	"TUI-MC-Launcher/auth"
	"TUI-MC-Launcher/version"
	"context"
	"errors"
	"fmt"
)

// Error classes of the pipeline. Every step wraps exactly one of them, and
// none is retried.
var (
	ErrVersionResolution = errors.New("version resolution failed")
	ErrInvalidConfig     = errors.New("invalid launch configuration")
	ErrSessionCreation   = errors.New("session creation failed")
	ErrLaunch            = errors.New("launch failed")

	// ErrBusy is returned by Orchestrator.Run while another attempt is in flight.
	ErrBusy = errors.New("a launch is already in progress")
)

// StageError records which step of an attempt failed.
type StageError struct {
	Stage State // the state the attempt was moving into
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// UserMessage turns a pipeline error into text for the interface.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	cause := err
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		cause = stageErr.Err
	}

	switch {
	case errors.Is(err, ErrBusy):
		return "A launch is already running. Wait for it to finish."
	case errors.Is(err, context.Canceled):
		return "Launch cancelled."
	case errors.Is(err, version.ErrNotFound):
		return fmt.Sprintf("This version is not installed. Download it first. (%v)", cause)
	case errors.Is(err, version.ErrCorrupt):
		return fmt.Sprintf("The version files are damaged. Re-download the version. (%v)", cause)
	case errors.Is(err, ErrVersionResolution):
		return fmt.Sprintf("Could not read the version files: %v", cause)
	case errors.Is(err, auth.ErrInvalidIdentity):
		return fmt.Sprintf("Check the account settings: %v", cause)
	case errors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("Check the launch settings: %v", cause)
	case errors.Is(err, ErrSessionCreation):
		return fmt.Sprintf("The game files are not ready: %v", cause)
	case errors.Is(err, ErrLaunch):
		return fmt.Sprintf("Java could not be started. Check the Java path. (%v)", cause)
	default:
		return fmt.Sprintf("Launch failed: %v", cause)
	}
}
