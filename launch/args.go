package launch

import (
	"TUI-MC-Launcher/version"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// legacyJVMArgs are used for versions that predate arguments.jvm.
var legacyJVMArgs = []string{
	"-Djava.library.path=${natives_directory}",
	"-cp",
	"${classpath}",
}

// launchVars is the substitution table for ${...} placeholders.
func launchVars(cfg *ClientConfig, classpath []string) map[string]string {
	info := cfg.info
	gameDir := info.GameDir()
	assetsRoot := filepath.Join(gameDir, "assets")
	assetsID := info.Meta.AssetsID()
	sep := string(os.PathListSeparator)
	id := cfg.identity

	return map[string]string{
		"auth_player_name":    id.PlayerName,
		"auth_uuid":           id.UUID,
		"auth_access_token":   id.AccessToken,
		"auth_session":        id.AccessToken,
		"auth_xuid":           id.XUID,
		"clientid":            id.ClientID,
		"user_type":           id.UserType,
		"user_properties":     "{}",
		"version_name":        info.ID,
		"version_type":        cfg.versionType,
		"game_directory":      gameDir,
		"assets_root":         assetsRoot,
		"game_assets":         filepath.Join(assetsRoot, "virtual", assetsID),
		"assets_index_name":   assetsID,
		"natives_directory":   info.NativesDir(),
		"launcher_name":       LauncherName,
		"launcher_version":    LauncherVersion,
		"classpath":           strings.Join(classpath, sep),
		"classpath_separator": sep,
		"library_directory":   filepath.Join(gameDir, "libraries"),
	}
}

// substitute replaces known placeholders and leaves unknown ones untouched.
func substitute(arg string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(arg, func(m string) string {
		if v, ok := vars[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func expand(args []version.Argument, env version.Environment, vars map[string]string) []string {
	var out []string
	for _, a := range args {
		if !version.Allowed(a.Rules, env) {
			continue
		}
		for _, v := range a.Values {
			out = append(out, substitute(v, vars))
		}
	}
	return out
}

// buildArgs derives the argument vector passed to java. The result depends
// only on cfg and classpath.
func buildArgs(cfg *ClientConfig, classpath []string) []string {
	meta := cfg.info.Meta
	vars := launchVars(cfg, classpath)

	args := []string{"-Xmx" + strconv.Itoa(cfg.maxMemMB) + "m"}
	args = append(args, cfg.javaArgs...)

	if meta.Arguments != nil && len(meta.Arguments.JVM) > 0 {
		args = append(args, expand(meta.Arguments.JVM, cfg.env, vars)...)
	} else {
		for _, a := range legacyJVMArgs {
			args = append(args, substitute(a, vars))
		}
	}

	args = append(args, meta.MainClass)

	if meta.Arguments != nil && len(meta.Arguments.Game) > 0 {
		args = append(args, expand(meta.Arguments.Game, cfg.env, vars)...)
	} else {
		for _, a := range strings.Fields(meta.MinecraftArguments) {
			args = append(args, substitute(a, vars))
		}
	}

	return append(args, cfg.gameArgs...)
}
