package tui

import (
	"TUI-MC-Launcher/auth"
	"TUI-MC-Launcher/config"
	"TUI-MC-Launcher/install"
	"TUI-MC-Launcher/launch"
	"TUI-MC-Launcher/version"
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Commands turns user actions into tea.Cmds. Long-running work runs inside
// the returned commands, off the render loop, and reports back as messages.
type Commands struct {
	ctx          context.Context
	fs           afero.Fs
	orchestrator *launch.Orchestrator
	progress     chan install.Progress
	states       chan launch.State

	// overridable for tests
	saveConfig         func(config.Config) error
	configureInstaller func(*install.Installer)
}

// NewCommands returns a command set reading the version store from fs.
func NewCommands(ctx context.Context, fs afero.Fs) *Commands {
	c := &Commands{
		ctx:        ctx,
		fs:         fs,
		progress:   make(chan install.Progress, progressBuffer),
		states:     make(chan launch.State, progressBuffer),
		saveConfig: config.SaveConfig,
	}
	c.orchestrator = launch.NewOrchestrator(fs, c.observe)
	return c
}

// observe forwards state changes to the UI without ever blocking the pipeline.
func (c *Commands) observe(from, to launch.State, err error) {
	select {
	case c.states <- to:
	default:
		log.Debug().Stringer("state", to).Msg("dropped launch state update")
	}
}

func (c *Commands) reportProgress(p install.Progress) {
	select {
	case c.progress <- p:
	default:
	}
}

// ListenStates waits for the next launch state change.
func (c *Commands) ListenStates() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-c.states:
			return launchStateMsg(s)
		case <-c.ctx.Done():
			return nil
		}
	}
}

// ListenProgress waits for the next install progress update.
func (c *Commands) ListenProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-c.progress:
			return installProgressMsg(p)
		case <-c.ctx.Done():
			return nil
		}
	}
}

// ScanVersions lists the installed versions.
func (c *Commands) ScanVersions(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		entries, err := version.List(c.fs, cfg.VersionsDir)
		return versionsScannedMsg{entries: entries, err: err}
	}
}

func (c *Commands) installer(cfg config.Config) *install.Installer {
	inst := install.New(cfg.GameDir())
	inst.Concurrency = cfg.Concurrency
	inst.OnProgress = c.reportProgress
	if c.configureInstaller != nil {
		c.configureInstaller(inst)
	}
	return inst
}

// FetchManifest fetches the published releases.
func (c *Commands) FetchManifest(cfg config.Config) tea.Cmd {
	inst := c.installer(cfg)
	return func() tea.Msg {
		m, err := inst.Manifest(c.ctx)
		if err != nil {
			return manifestFetchedMsg{err: err}
		}
		versions, err := m.Filter("release", "")
		return manifestFetchedMsg{versions: versions, err: err}
	}
}

// Install downloads a version and everything it needs.
func (c *Commands) Install(cfg config.Config, id string) tea.Cmd {
	inst := c.installer(cfg)
	return func() tea.Msg {
		_, err := inst.InstallVersion(c.ctx, id)
		if err != nil {
			log.Error().Err(err).Str("version", id).Msg("install failed")
		}
		return installFinishedMsg{versionID: id, err: err}
	}
}

// InstallRuntime installs the Java runtime the version asks for.
func (c *Commands) InstallRuntime(cfg config.Config, id string) tea.Cmd {
	inst := c.installer(cfg)
	return func() tea.Msg {
		info := version.New(cfg.VersionsDir, id)
		if err := info.Load(c.ctx, c.fs); err != nil {
			return runtimeInstalledMsg{err: fmt.Errorf("cannot read %s: %w", id, err)}
		}
		component := install.Component(info.Meta)
		javaPath, err := inst.InstallRuntime(c.ctx, component)
		return runtimeInstalledMsg{component: component, javaPath: javaPath, err: err}
	}
}

// Launch runs the launch pipeline for id. The UI stays responsive while it
// runs; the outcome arrives as a launchFinishedMsg.
func (c *Commands) Launch(cfg config.Config, id string) tea.Cmd {
	req := launchRequest(cfg, id)
	return func() tea.Msg {
		proc, err := c.orchestrator.Run(c.ctx, req)
		return launchFinishedMsg{versionID: id, proc: proc, err: err}
	}
}

// SaveConfig persists cfg.
func (c *Commands) SaveConfig(cfg config.Config) error {
	return c.saveConfig(cfg)
}

func launchRequest(cfg config.Config, id string) launch.Request {
	return launch.Request{
		VersionsDir: cfg.VersionsDir,
		VersionID:   id,
		Auth:        auth.Offline{PlayerName: cfg.PlayerName, UUID: cfg.PlayerUUID},
		JavaPath:    cfg.JavaPath,
		MaxMemoryMB: cfg.MaxMemoryMB,
		Options: launch.Options{
			VersionType: cfg.VersionType,
			JavaArgs:    cfg.JavaArgs,
			GameArgs:    cfg.GameArgs,
			Recheck:     cfg.Recheck,
		},
	}
}
