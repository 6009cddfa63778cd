package tui

import (
	"TUI-MC-Launcher/install"
	"TUI-MC-Launcher/launch"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.commands.ListenStates(),
		m.commands.ListenProgress(),
		m.spinner.Tick,
	}
	if m.currentView == viewList {
		cmds = append(cmds, m.commands.ScanVersions(m.config))
	}
	return tea.Batch(cmds...)
}

// Update updates the model based on messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.currentView {
		case viewSettings, viewInitialSetup:
			return m.updateSettingsView(keyMsg)
		default:
			return m.updateListView(keyMsg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UpdateWindowSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case versionsScannedMsg:
		return m.handleVersionsScanned(msg)

	case manifestFetchedMsg:
		return m.handleManifestFetched(msg)

	case launchStateMsg:
		m.launchState = launch.State(msg)
		return m, m.commands.ListenStates()

	case launchFinishedMsg:
		return m.handleLaunchFinished(msg)

	case installProgressMsg:
		m.installProgress = install.Progress(msg)
		return m, m.commands.ListenProgress()

	case installFinishedMsg:
		return m.handleInstallFinished(msg)

	case runtimeInstalledMsg:
		return m.handleRuntimeInstalled(msg)
	}

	return m, nil
}

// updateListView handles key events in the version list
func (m *Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, listKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, listKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, listKeys.Launch):
		return m.handleLaunch()

	case key.Matches(msg, listKeys.Download):
		return m.handleInstall()

	case key.Matches(msg, listKeys.Runtime):
		return m.handleInstallRuntime()

	case key.Matches(msg, listKeys.Fetch):
		m.isLoading = true
		m.err = nil
		return m, m.commands.FetchManifest(m.config)

	case key.Matches(msg, listKeys.Settings):
		return m.handleShowSettings()
	}
	return m, nil
}

// updateSettingsView handles key events in the settings view
func (m *Model) updateSettingsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		switch {
		case msg.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case msg.Type == tea.KeyTab && pathFields[m.focusIndex]:
			m.completePath()
			return m, nil
		case key.Matches(msg, settingsKeys.Done):
			m.editMode = false
			updateFocusStyles(m)
			return m, nil
		}
		return m, m.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, settingsKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, settingsKeys.Save):
		return m.saveSettings()

	case key.Matches(msg, settingsKeys.Cancel):
		if m.currentView == viewSettings {
			m.settingsInputs = newSettingsInputs(m.config)
			m.currentView = viewList
			m.err = nil
		}
		return m, nil

	case key.Matches(msg, settingsKeys.Edit):
		m.editMode = true
		updateFocusStyles(m)
		return m, nil

	case key.Matches(msg, settingsKeys.Up):
		m.focusIndex = (m.focusIndex - 1 + len(m.settingsInputs)) % len(m.settingsInputs)
		updateFocusStyles(m)
		return m, nil

	case key.Matches(msg, settingsKeys.Down), msg.Type == tea.KeyTab:
		m.focusIndex = (m.focusIndex + 1) % len(m.settingsInputs)
		updateFocusStyles(m)
		return m, nil
	}
	return m, nil
}
