package tui

import (
	"TUI-MC-Launcher/install"
	"TUI-MC-Launcher/launch"
	"TUI-MC-Launcher/version"
)

// Define messages for communication between components
type (
	// Data update messages
	versionsScannedMsg struct { // installed versions listed
		entries []version.Entry
		err     error
	}
	manifestFetchedMsg struct { // published versions fetched
		versions []install.RemoteVersion
		err      error
	}

	// Launch pipeline
	launchStateMsg    launch.State
	launchFinishedMsg struct {
		versionID string
		proc      *launch.Process
		err       error
	}

	// Installs
	installProgressMsg install.Progress
	installFinishedMsg struct {
		versionID string
		err       error
	}
	runtimeInstalledMsg struct {
		component string
		javaPath  string
		err       error
	}
)
