package tui

import (
	"TUI-MC-Launcher/config"
	"TUI-MC-Launcher/install"
	"TUI-MC-Launcher/launch"
	"TUI-MC-Launcher/version"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// row is one line of the version list.
type row struct {
	entry     version.Entry
	installed bool
}

// Model represents the state of the TUI application.
type Model struct {
	rows     []row
	remote   []install.RemoteVersion
	cursor   int
	config   config.Config
	commands *Commands
	err      error
	status   string

	terminalWidth  int
	terminalHeight int
	isLoading      bool
	currentView    viewState

	// settings
	focusIndex     int
	editMode       bool
	settingsInputs []textinput.Model

	// launch
	launching   bool
	launchState launch.State
	process     *launch.Process
	spinner     spinner.Model

	// install
	installing      string
	installProgress install.Progress
	installStarted  time.Time
	progressBar     progress.Model
}

// settingField describes one editable setting.
type settingField struct {
	label       string
	description string
	get         func(config.Config) string
	set         func(*config.Config, string) error
}

var settingFields = []settingField{
	{
		label:       "Versions Directory:",
		description: "The versions folder of the game directory; libraries and assets live next to it",
		get:         func(c config.Config) string { return c.VersionsDir },
		set:         func(c *config.Config, v string) error { c.VersionsDir = v; return nil },
	},
	{
		label:       "Java Path:",
		description: "Java executable used to start the game",
		get:         func(c config.Config) string { return c.JavaPath },
		set:         func(c *config.Config, v string) error { c.JavaPath = v; return nil },
	},
	{
		label:       "Max Memory (MB):",
		description: "Passed to java as -Xmx",
		get:         func(c config.Config) string { return strconv.Itoa(c.MaxMemoryMB) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			c.MaxMemoryMB = n
			return nil
		},
	},
	{
		label:       "Player Name:",
		description: "Offline player name, up to 16 characters",
		get:         func(c config.Config) string { return c.PlayerName },
		set:         func(c *config.Config, v string) error { c.PlayerName = strings.TrimSpace(v); return nil },
	},
	{
		label:       "Player UUID:",
		description: "Dashed or undashed; empty derives the offline UUID from the name",
		get:         func(c config.Config) string { return c.PlayerUUID },
		set:         func(c *config.Config, v string) error { c.PlayerUUID = strings.TrimSpace(v); return nil },
	},
	{
		label:       "Version Type:",
		description: "Shown on the title screen (empty uses the launcher name)",
		get:         func(c config.Config) string { return c.VersionType },
		set:         func(c *config.Config, v string) error { c.VersionType = strings.TrimSpace(v); return nil },
	},
	{
		label:       "JVM Arguments:",
		description: "Extra java arguments, separated by spaces",
		get:         func(c config.Config) string { return strings.Join(c.JavaArgs, " ") },
		set:         func(c *config.Config, v string) error { c.JavaArgs = strings.Fields(v); return nil },
	},
	{
		label:       "Game Arguments:",
		description: "Extra game arguments, separated by spaces",
		get:         func(c config.Config) string { return strings.Join(c.GameArgs, " ") },
		set:         func(c *config.Config, v string) error { c.GameArgs = strings.Fields(v); return nil },
	},
	{
		label:       "Download Threads:",
		description: "Files downloaded at once, 1 to 64",
		get:         func(c config.Config) string { return strconv.Itoa(c.Concurrency) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			c.Concurrency = n
			return nil
		},
	},
	{
		label:       "Log Level:",
		description: "trace, debug, info, warn or error; applies on next start",
		get:         func(c config.Config) string { return c.LogLevel },
		set:         func(c *config.Config, v string) error { c.LogLevel = strings.TrimSpace(v); return nil },
	},
}

// pathFields take tab completion.
var pathFields = map[int]bool{0: true, 1: true}

// InitialModel creates the initial state of the TUI model.
func InitialModel(cfg config.Config, commands *Commands, needsSetup bool) *Model {
	progModel := progress.New(
		progress.WithGradient("#FFAA00", "#FFD700"),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = keyStyle

	m := &Model{
		config:      cfg,
		commands:    commands,
		progressBar: progModel,
		spinner:     spin,
		isLoading:   !needsSetup,
		currentView: viewList,
	}
	m.settingsInputs = newSettingsInputs(cfg)

	if needsSetup {
		m.currentView = viewInitialSetup
		m.editMode = true
		m.settingsInputs[0].Focus()
	}
	return m
}

func newSettingsInputs(cfg config.Config) []textinput.Model {
	inputs := make([]textinput.Model, len(settingFields))
	for i, f := range settingFields {
		t := textinput.New()
		t.Placeholder = f.get(config.DefaultConfig())
		t.SetValue(f.get(cfg))
		t.CharLimit = 256
		t.Width = 50
		inputs[i] = t
	}
	return inputs
}

// Process returns the game handed off by a successful launch, or nil.
func (m *Model) Process() *launch.Process {
	return m.process
}

// Config returns the settings as currently held by the UI.
func (m *Model) Config() config.Config {
	return m.config
}

// UpdateWindowSize updates the terminal dimensions
func (m *Model) UpdateWindowSize(width, height int) {
	m.terminalWidth = width
	m.terminalHeight = height
}

func (m *Model) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// rebuildRows merges installed versions with the published ones.
func (m *Model) rebuildRows(installed []version.Entry) {
	prev, hadPrev := m.selected()

	isInstalled := make(map[string]bool, len(installed))
	entries := append([]version.Entry(nil), installed...)
	for _, e := range installed {
		isInstalled[e.ID] = true
	}
	for _, r := range m.remote {
		if isInstalled[r.ID] {
			continue
		}
		entries = append(entries, version.Entry{ID: r.ID, Type: r.Type, ReleaseTime: r.ReleaseTime})
	}
	version.SortEntries(entries)

	m.rows = make([]row, len(entries))
	want := m.config.LastVersion
	if hadPrev {
		want = prev.entry.ID
	}
	m.cursor = 0
	for i, e := range entries {
		m.rows[i] = row{entry: e, installed: isInstalled[e.ID]}
		if e.ID == want {
			m.cursor = i
		}
	}
}

func (m *Model) installedEntries() []version.Entry {
	var out []version.Entry
	for _, r := range m.rows {
		if r.installed {
			out = append(out, r.entry)
		}
	}
	return out
}
