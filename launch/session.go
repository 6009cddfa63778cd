package launch

import (
	"TUI-MC-Launcher/archive"
	"TUI-MC-Launcher/version"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Session is a launch-ready bundle built from exactly one ClientConfig.
// It can be launched once.
type Session struct {
	cfg       *ClientConfig
	classpath []string
	args      []string
	dir       string

	mu       sync.Mutex
	launched bool
}

// NewSession checks the prerequisites of cfg on fs, unpacks native libraries
// and derives the launch arguments. Every failure wraps ErrSessionCreation.
// The java executable itself is not checked; a bad path fails at Launch.
func NewSession(ctx context.Context, fs afero.Fs, cfg *ClientConfig) (*Session, error) {
	if cfg == nil || !cfg.info.Loaded() {
		return nil, fmt.Errorf("%w: no loaded configuration", ErrSessionCreation)
	}
	if strings.TrimSpace(cfg.javaPath) == "" {
		return nil, fmt.Errorf("%w: no java runtime configured", ErrSessionCreation)
	}

	info := cfg.info
	if ok, err := afero.Exists(fs, info.JarPath()); err != nil || !ok {
		return nil, fmt.Errorf("%w: client jar %s is missing", ErrSessionCreation, info.JarPath())
	}

	classpath, err := buildClasspath(fs, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionCreation, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := extractNatives(ctx, fs, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionCreation, err)
	}

	s := &Session{
		cfg:       cfg,
		classpath: classpath,
		args:      buildArgs(cfg, classpath),
		dir:       info.GameDir(),
	}
	log.Debug().
		Str("version", info.ID).
		Int("classpath", len(classpath)).
		Strs("args", s.args).
		Msg("session ready")
	return s, nil
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *ClientConfig { return s.cfg }

// JavaPath is the executable the session will spawn.
func (s *Session) JavaPath() string { return s.cfg.javaPath }

// Dir is the working directory of the game process.
func (s *Session) Dir() string { return s.dir }

// Args returns a copy of the arguments passed to java.
func (s *Session) Args() []string { return append([]string(nil), s.args...) }

// Classpath returns a copy of the resolved classpath entries.
func (s *Session) Classpath() []string { return append([]string(nil), s.classpath...) }

// Launch spawns the game. Whether it succeeds or fails, the session is
// consumed. The process is detached so it outlives the launcher.
func (s *Session) Launch(ctx context.Context) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launched {
		return nil, fmt.Errorf("%w: session already used", ErrLaunch)
	}
	s.launched = true

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Not CommandContext: cancelling the launcher must not kill the game.
	cmd := exec.Command(s.cfg.javaPath, s.args...)
	cmd.Dir = s.dir
	detachProcess(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	log.Info().
		Str("version", s.cfg.info.ID).
		Int("pid", cmd.Process.Pid).
		Msg("game process started")
	return &Process{
		Pid:  cmd.Process.Pid,
		Path: s.cfg.javaPath,
		Args: s.Args(),
		Dir:  s.dir,
		cmd:  cmd,
	}, nil
}

// libraryKey identifies a library regardless of version, so an inheriting
// version's copy shadows the parent's.
func libraryKey(name string) string {
	parts := strings.Split(name, ":")
	if len(parts) < 3 {
		return name
	}
	key := parts[0] + ":" + parts[1]
	if len(parts) > 3 {
		key += ":" + parts[3]
	}
	return key
}

func buildClasspath(fs afero.Fs, cfg *ClientConfig) ([]string, error) {
	info := cfg.info
	libDir := filepath.Join(info.GameDir(), "libraries")
	seen := make(map[string]bool)
	var classpath []string

	for _, lib := range info.Meta.Libraries {
		if !version.Allowed(lib.Rules, cfg.env) {
			continue
		}
		key := libraryKey(lib.Name)
		if seen[key] {
			continue
		}
		art, err := lib.Artifact()
		if err != nil {
			return nil, err
		}
		if art == nil {
			continue
		}
		seen[key] = true

		p := filepath.Join(libDir, filepath.FromSlash(art.Path))
		if cfg.recheck {
			if ok, err := afero.Exists(fs, p); err != nil || !ok {
				return nil, fmt.Errorf("library %s is missing at %s", lib.Name, p)
			}
		}
		classpath = append(classpath, p)
	}

	return append(classpath, info.JarPath()), nil
}

func extractNatives(ctx context.Context, fs afero.Fs, cfg *ClientConfig) error {
	info := cfg.info
	nativesDir := info.NativesDir()
	if err := fs.MkdirAll(nativesDir, 0750); err != nil {
		return fmt.Errorf("cannot create natives directory %s: %w", nativesDir, err)
	}

	libDir := filepath.Join(info.GameDir(), "libraries")
	for _, lib := range info.Meta.Libraries {
		if !version.Allowed(lib.Rules, cfg.env) {
			continue
		}
		native, err := lib.Native(cfg.env)
		if err != nil {
			return err
		}
		if native == nil {
			continue
		}

		var exclude []string
		if lib.Extract != nil {
			exclude = lib.Extract.Exclude
		}
		p := filepath.Join(libDir, filepath.FromSlash(native.Path))
		if err := archive.ExtractZip(ctx, fs, p, nativesDir, exclude); err != nil {
			return fmt.Errorf("natives of %s: %w", lib.Name, err)
		}
	}
	return nil
}
