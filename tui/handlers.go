package tui

import (
	"TUI-MC-Launcher/install"
	"TUI-MC-Launcher/launch"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Helper to update focused input
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	if m.focusIndex < 0 || m.focusIndex >= len(m.settingsInputs) {
		return nil
	}
	var cmd tea.Cmd
	m.settingsInputs[m.focusIndex], cmd = m.settingsInputs[m.focusIndex].Update(msg)
	return cmd
}

func (m *Model) handleVersionsScanned(msg versionsScannedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.rebuildRows(msg.entries)
	return m, nil
}

func (m *Model) handleManifestFetched(msg manifestFetchedMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.remote = msg.versions
	m.rebuildRows(m.installedEntries())
	m.status = fmt.Sprintf("%d releases available", len(msg.versions))
	return m, nil
}

// handleLaunch dispatches the launch pipeline for the selected version. The
// pipeline itself decides whether the version is usable.
func (m *Model) handleLaunch() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := r.entry.ID

	if !m.launching {
		m.launchState = launch.StateIdle
	}
	m.launching = true
	m.err = nil
	m.status = ""

	if m.config.LastVersion != id {
		m.config.LastVersion = id
		if err := m.commands.SaveConfig(m.config); err != nil {
			log.Warn().Err(err).Msg("could not remember last version")
		}
	}
	return m, m.commands.Launch(m.config, id)
}

func (m *Model) handleLaunchFinished(msg launchFinishedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, launch.ErrBusy) {
		// the first attempt is still running and will report itself
		m.status = launch.UserMessage(msg.err)
		return m, nil
	}

	m.launching = false
	if msg.err != nil {
		m.err = msg.err
		m.launchState = launch.StateFailed
		return m, nil
	}

	m.process = msg.proc
	m.launchState = launch.StateDone
	m.status = fmt.Sprintf("Started %s (pid %d)", msg.versionID, msg.proc.Pid)
	return m, tea.Quit
}

func (m *Model) handleInstall() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	if m.installing != "" {
		m.err = fmt.Errorf("already downloading %s", m.installing)
		return m, nil
	}
	m.installing = r.entry.ID
	m.installStarted = time.Now()
	m.installProgress = install.Progress{}
	m.err = nil
	m.status = ""
	return m, m.commands.Install(m.config, r.entry.ID)
}

func (m *Model) handleInstallFinished(msg installFinishedMsg) (tea.Model, tea.Cmd) {
	m.installing = ""
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.status = fmt.Sprintf("Installed %s", msg.versionID)
	m.isLoading = true
	return m, m.commands.ScanVersions(m.config)
}

func (m *Model) handleInstallRuntime() (tea.Model, tea.Cmd) {
	r, ok := m.selected()
	if !ok {
		return m, nil
	}
	if !r.installed {
		m.err = fmt.Errorf("%s is not installed; download it first", r.entry.ID)
		return m, nil
	}
	if m.installing != "" {
		m.err = fmt.Errorf("already downloading %s", m.installing)
		return m, nil
	}
	m.installing = "Java for " + r.entry.ID
	m.installStarted = time.Now()
	m.installProgress = install.Progress{}
	m.err = nil
	m.status = ""
	return m, m.commands.InstallRuntime(m.config, r.entry.ID)
}

// handleRuntimeInstalled points the java path at the new runtime.
func (m *Model) handleRuntimeInstalled(msg runtimeInstalledMsg) (tea.Model, tea.Cmd) {
	m.installing = ""
	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.config.JavaPath = msg.javaPath
	m.settingsInputs[1].SetValue(msg.javaPath)
	if err := m.commands.SaveConfig(m.config); err != nil {
		m.err = fmt.Errorf("failed to save config: %w", err)
		return m, nil
	}
	m.status = fmt.Sprintf("Installed %s, java path set to %s", msg.component, msg.javaPath)
	return m, nil
}

func (m *Model) handleShowSettings() (tea.Model, tea.Cmd) {
	m.currentView = viewSettings
	m.settingsInputs = newSettingsInputs(m.config)
	m.focusIndex = 0
	m.editMode = false
	m.err = nil
	updateFocusStyles(m)
	return m, nil
}

// saveSettings validates the inputs, writes the config and rescans.
func (m *Model) saveSettings() (tea.Model, tea.Cmd) {
	cfg := m.config
	for i, f := range settingFields {
		if err := f.set(&cfg, m.settingsInputs[i].Value()); err != nil {
			m.err = fmt.Errorf("%s %w", strings.TrimSuffix(f.label, ":"), err)
			return m, nil
		}
	}
	if err := cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	if err := m.commands.SaveConfig(cfg); err != nil {
		m.err = fmt.Errorf("failed to save config: %w", err)
		return m, nil
	}

	m.config = cfg
	m.err = nil
	m.editMode = false
	m.currentView = viewList
	m.isLoading = true
	m.status = "Settings saved"
	return m, m.commands.ScanVersions(cfg)
}

// completePath completes the focused path input from the filesystem.
func (m *Model) completePath() {
	input := &m.settingsInputs[m.focusIndex]
	matches, err := PathCompletions(m.commands.fs, input.Value(), m.focusIndex == 0)
	if err != nil || len(matches) == 0 {
		return
	}
	if len(matches) == 1 {
		completed := matches[0]
		if isDir, _ := isDirectory(m.commands.fs, completed); isDir {
			completed += string(os.PathSeparator)
		}
		input.SetValue(completed)
	} else {
		input.SetValue(commonPrefix(matches))
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = filepath.Base(p)
		}
		m.status = strings.Join(names, "  ")
	}
	input.CursorEnd()
}

// updateFocusStyles highlights the focused input and focuses it in edit mode.
func updateFocusStyles(m *Model) {
	for i := range m.settingsInputs {
		if i == m.focusIndex {
			m.settingsInputs[i].PromptStyle = selectedRowStyle
			if m.editMode {
				m.settingsInputs[i].Focus()
				continue
			}
		} else {
			m.settingsInputs[i].PromptStyle = regularRowStyle
		}
		m.settingsInputs[i].Blur()
	}
}

// errorText renders pipeline errors as user messages and anything else as is.
func errorText(err error) string {
	var stageErr *launch.StageError
	if errors.As(err, &stageErr) || errors.Is(err, launch.ErrBusy) {
		return launch.UserMessage(err)
	}
	return err.Error()
}
