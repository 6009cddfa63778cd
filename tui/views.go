package tui

import (
	"TUI-MC-Launcher/util"
	"fmt"
	"strings"
	"time"

	lp "github.com/charmbracelet/lipgloss"
)

// View renders the current view of the model.
func (m *Model) View() string {
	if m.currentView == viewInitialSetup || m.currentView == viewSettings {
		return m.renderSettingsPage()
	}
	return m.renderListPage()
}

func (m *Model) renderListPage() string {
	header := m.renderHeader("TUI MC Launcher")
	footer := m.renderListFooter()
	status := m.renderStatus()

	bodyHeight := m.terminalHeight - lp.Height(header) - lp.Height(footer) - lp.Height(status)
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	body := m.renderVersionTable(bodyHeight)
	page := lp.JoinVertical(lp.Left, header, body, status, footer)
	return lp.Place(m.terminalWidth, m.terminalHeight, lp.Left, lp.Top, page)
}

func (m *Model) renderHeader(title string) string {
	return headerStyle.Width(m.terminalWidth).AlignHorizontal(lp.Center).Render(title)
}

func (m *Model) renderVersionTable(height int) string {
	if m.isLoading {
		return lp.Place(m.terminalWidth, height, lp.Center, lp.Top, keyStyle.Render("Loading versions..."))
	}
	if len(m.rows) == 0 {
		msg := "No versions installed. Press f to fetch the published versions."
		return lp.Place(m.terminalWidth, height, lp.Center, lp.Top, keyStyle.Render(msg))
	}

	var b strings.Builder
	b.WriteString(lp.NewStyle().Bold(true).Render(formatRow("Version", "Type", "Released", "Status")))
	b.WriteString("\n")

	// keep the cursor on screen
	visible := height - 1
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.rows) && i < start+visible; i++ {
		r := m.rows[i]
		released := ""
		if t := r.entry.ReleaseTime.Time(); !t.IsZero() {
			released = t.Format("2006-01-02")
		}
		status := "Online"
		if r.installed {
			status = "Installed"
		}
		if r.entry.ID == m.installing {
			status = "Downloading"
		}

		line := formatRow(r.entry.ID, r.entry.Type, released, status)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Width(m.terminalWidth).Render(line))
		} else {
			b.WriteString(regularRowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return lp.Place(m.terminalWidth, height, lp.Left, lp.Top, b.String())
}

func formatRow(id, typ, released, status string) string {
	return cellStyleLeft.Width(colWidthVersion).MaxWidth(colWidthVersion).Render(id) + " " +
		cellStyleCenter.Width(colWidthType).Render(typ) + " " +
		cellStyleCenter.Width(colWidthReleased).Render(released) + " " +
		cellStyleCenter.Width(colWidthStatus).Render(status)
}

// renderStatus shows launch state, install progress and the last message.
func (m *Model) renderStatus() string {
	var lines []string

	if m.launching {
		lines = append(lines, fmt.Sprintf("%s Launching: %s", m.spinner.View(), m.launchState))
	}
	if m.installing != "" {
		lines = append(lines, m.renderInstallProgress())
	}
	switch {
	case m.err != nil:
		lines = append(lines, errorStyle.Render(errorText(m.err)))
	case m.status != "":
		lines = append(lines, successStyle.Render(m.status))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderInstallProgress() string {
	p := m.installProgress
	line := fmt.Sprintf("%s Downloading %s: %s", m.spinner.View(), m.installing, p.Stage)
	if p.FilesTotal == 0 {
		return line
	}

	elapsed := time.Since(m.installStarted)
	return fmt.Sprintf("%s %s %d/%d  %s  %s  %s",
		line,
		m.progressBar.ViewAs(p.Fraction()),
		p.FilesDone, p.FilesTotal,
		util.FormatSize(p.Bytes),
		util.FormatSpeed(util.Rate(p.Bytes, elapsed)),
		util.FormatElapsed(elapsed),
	)
}

func (m *Model) renderListFooter() string {
	sep := faintStyle.Render(" · ")
	var commands []string
	for _, b := range []struct{ k, desc string }{
		{listKeys.Quit.Help().Key, listKeys.Quit.Help().Desc},
		{listKeys.Settings.Help().Key, listKeys.Settings.Help().Desc},
		{listKeys.Fetch.Help().Key, listKeys.Fetch.Help().Desc},
	} {
		commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(b.k), b.desc))
	}

	if r, ok := m.selected(); ok {
		commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(listKeys.Launch.Help().Key), listKeys.Launch.Help().Desc))
		if r.installed {
			commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(listKeys.Runtime.Help().Key), listKeys.Runtime.Help().Desc))
			commands = append(commands, fmt.Sprintf("%s Repair", keyStyle.Render(listKeys.Download.Help().Key)))
		} else {
			commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(listKeys.Download.Help().Key), listKeys.Download.Help().Desc))
		}
	}
	return footerStyle.Width(m.terminalWidth).Render(strings.Join(commands, sep))
}

func (m *Model) renderSettingsPage() string {
	header := m.renderHeader("TUI MC Launcher - Settings")

	var b strings.Builder
	if m.currentView == viewInitialSetup {
		b.WriteString(successStyle.Bold(true).Render("Welcome to TUI MC Launcher") + "\n\n")
		b.WriteString("Please configure the following settings to get started:\n\n")
	}
	for i, f := range settingFields {
		focused := i == m.focusIndex
		label := lp.NewStyle().Bold(focused).Width(settingsLabelWidth).Render(f.label)
		b.WriteString(label + m.settingsInputs[i].View() + "\n")
	}
	if m.focusIndex >= 0 && m.focusIndex < len(settingFields) {
		b.WriteString("\n" + faintStyle.Italic(true).Render(settingFields[m.focusIndex].description) + "\n\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(warningStyle.Render(m.status) + "\n")
	}

	sep := faintStyle.Render(" · ")
	var commands []string
	if m.editMode {
		commands = append(commands, fmt.Sprintf("%s Done", keyStyle.Render("enter/esc")))
		if pathFields[m.focusIndex] {
			commands = append(commands, fmt.Sprintf("%s Complete", keyStyle.Render("tab")))
		}
	} else {
		commands = append(commands,
			fmt.Sprintf("%s %s", keyStyle.Render(settingsKeys.Save.Help().Key), settingsKeys.Save.Help().Desc),
			fmt.Sprintf("%s %s", keyStyle.Render(settingsKeys.Edit.Help().Key), settingsKeys.Edit.Help().Desc),
			fmt.Sprintf("%s %s", keyStyle.Render(settingsKeys.Quit.Help().Key), settingsKeys.Quit.Help().Desc),
		)
		if m.currentView == viewSettings {
			commands = append(commands, fmt.Sprintf("%s %s", keyStyle.Render(settingsKeys.Cancel.Help().Key), settingsKeys.Cancel.Help().Desc))
		}
	}
	footer := footerStyle.Width(m.terminalWidth).Render(strings.Join(commands, sep))

	page := lp.JoinVertical(lp.Left, header, b.String(), footer)
	return lp.Place(m.terminalWidth, m.terminalHeight, lp.Left, lp.Top, page)
}
