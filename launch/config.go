package launch

import (
	"TUI-MC-Launcher/auth"
	"TUI-MC-Launcher/version"
	"fmt"
	"strings"
)

const (
	// LauncherName fills ${launcher_name} and the default version type.
	LauncherName = "TUI-MC-Launcher"
	// LauncherVersion fills ${launcher_version}.
	LauncherVersion = "1.0.0"
)

// Options are the optional parts of a ClientConfig.
type Options struct {
	VersionType string   // empty falls back to LauncherName
	JavaArgs    []string // appended after -Xmx, before the version's JVM args
	GameArgs    []string // appended after the version's game args
	Recheck     bool     // verify every classpath library exists

	// Env overrides the platform rules are evaluated against.
	Env *version.Environment
}

// ClientConfig is an immutable launch configuration. It can only be built
// from a loaded version by BuildConfig.
type ClientConfig struct {
	authKind    string
	identity    auth.Identity
	info        *version.Info
	javaPath    string
	maxMemMB    int
	versionType string
	javaArgs    []string
	gameArgs    []string
	recheck     bool
	env         version.Environment
}

// BuildConfig combines an auth method, a loaded version and runtime settings.
// It performs no I/O.
func BuildConfig(method auth.Method, info *version.Info, javaPath string, maxMemMB int, opts Options) (*ClientConfig, error) {
	if method == nil {
		return nil, fmt.Errorf("%w: no authentication method", ErrInvalidConfig)
	}
	if !info.Loaded() {
		return nil, fmt.Errorf("%w: version metadata is not loaded", ErrInvalidConfig)
	}
	if maxMemMB <= 0 {
		return nil, fmt.Errorf("%w: memory limit must be positive, got %d MB", ErrInvalidConfig, maxMemMB)
	}

	identity, err := method.Identity()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	versionType := strings.TrimSpace(opts.VersionType)
	if versionType == "" {
		versionType = LauncherName
	}

	env := version.CurrentEnvironment()
	if opts.Env != nil {
		env = *opts.Env
		env.Features = cloneFeatures(opts.Env.Features)
	}

	return &ClientConfig{
		authKind:    method.Kind(),
		identity:    identity,
		info:        info,
		javaPath:    javaPath,
		maxMemMB:    maxMemMB,
		versionType: versionType,
		javaArgs:    append([]string(nil), opts.JavaArgs...),
		gameArgs:    append([]string(nil), opts.GameArgs...),
		recheck:     opts.Recheck,
		env:         env,
	}, nil
}

// AuthKind names the auth variant the identity came from.
func (c *ClientConfig) AuthKind() string { return c.authKind }

// Identity returns the resolved player identity.
func (c *ClientConfig) Identity() auth.Identity { return c.identity }

// Version returns the loaded version the config was built from.
func (c *ClientConfig) Version() *version.Info { return c.info }

// JavaPath returns the java executable to run.
func (c *ClientConfig) JavaPath() string { return c.javaPath }

// MaxMemoryMB returns the -Xmx value in megabytes.
func (c *ClientConfig) MaxMemoryMB() int { return c.maxMemMB }

// VersionType returns the text substituted for ${version_type}.
func (c *ClientConfig) VersionType() string { return c.versionType }

// Recheck reports whether every library is checked before launch.
func (c *ClientConfig) Recheck() bool { return c.recheck }

// JavaArgs returns a copy of the custom JVM arguments.
func (c *ClientConfig) JavaArgs() []string { return append([]string(nil), c.javaArgs...) }

// GameArgs returns a copy of the custom game arguments.
func (c *ClientConfig) GameArgs() []string { return append([]string(nil), c.gameArgs...) }

func cloneFeatures(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
