package launch

import (
	"TUI-MC-Launcher/auth"
	"TUI-MC-Launcher/version"
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const modernJSON = `{
  "id": "1.19.4",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "assetIndex": {"id": "3", "sha1": "aa", "size": 1, "totalSize": 2, "url": "https://example.invalid/3.json"},
  "arguments": {
    "game": [
      "--username", "${auth_player_name}",
      "--version", "${version_name}",
      "--gameDir", "${game_directory}",
      "--assetsDir", "${assets_root}",
      "--assetIndex", "${assets_index_name}",
      "--uuid", "${auth_uuid}",
      "--accessToken", "${auth_access_token}",
      "--userType", "${user_type}",
      "--versionType", "${version_type}",
      {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}
    ],
    "jvm": [
      {"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
      "-Djava.library.path=${natives_directory}",
      "-Dminecraft.launcher.brand=${launcher_name}",
      "-cp", "${classpath}"
    ]
  },
  "libraries": [
    {"name": "com.mojang:brigadier:1.0.18",
     "downloads": {"artifact": {"path": "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar", "sha1": "cc", "size": 4, "url": "https://example.invalid/b.jar"}}},
    {"name": "org.lwjgl:lwjgl:3.3.1:natives-macos",
     "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-macos.jar", "sha1": "dd", "size": 5, "url": "https://example.invalid/m.jar"}},
     "rules": [{"action": "allow", "os": {"name": "osx"}}]}
  ]
}`

const legacyJSON = `{
  "id": "1.7.10",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "assets": "1.7.10",
  "minecraftArguments": "--username ${auth_player_name} --session ${auth_session} --assetsDir ${game_assets}",
  "libraries": [
    {"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.1",
     "natives": {"linux": "natives-linux"},
     "extract": {"exclude": ["META-INF/"]},
     "downloads": {"classifiers": {
       "natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.1/lwjgl-platform-2.9.1-natives-linux.jar", "sha1": "ee", "size": 6, "url": "https://example.invalid/n.jar"}
     }}}
  ]
}`

var linuxEnv = version.Environment{OS: "linux", Arch: "x86_64"}

// gameRoot lays out root/versions and root/libraries on fs and returns the
// versions directory.
type gameRoot struct {
	fs   afero.Fs
	root string
}

func newGameRoot(t *testing.T, fs afero.Fs, root string) *gameRoot {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Join(root, "versions"), 0o755))
	return &gameRoot{fs: fs, root: root}
}

func (g *gameRoot) versionsDir() string {
	return filepath.Join(g.root, "versions")
}

func (g *gameRoot) addVersion(t *testing.T, id, meta string, withJar bool) {
	t.Helper()
	dir := filepath.Join(g.versionsDir(), id)
	require.NoError(t, g.fs.MkdirAll(dir, 0o755))
	require.NoError(t, afero.WriteFile(g.fs, filepath.Join(dir, id+".json"), []byte(meta), 0o644))
	if withJar {
		require.NoError(t, afero.WriteFile(g.fs, filepath.Join(dir, id+".jar"), []byte("PK"), 0o644))
	}
}

func (g *gameRoot) addLibrary(t *testing.T, rel string, content []byte) {
	t.Helper()
	p := filepath.Join(g.root, "libraries", filepath.FromSlash(rel))
	require.NoError(t, g.fs.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, afero.WriteFile(g.fs, p, content, 0o644))
}

func nativesZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"liblwjgl.so":          "elf",
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// installed returns a store with the modern and legacy versions fully present.
func installed(t *testing.T, fs afero.Fs, root string) *gameRoot {
	t.Helper()
	g := newGameRoot(t, fs, root)
	g.addVersion(t, "1.19.4", modernJSON, true)
	g.addVersion(t, "1.7.10", legacyJSON, true)
	g.addLibrary(t, "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar", []byte("PK"))
	g.addLibrary(t, "org/lwjgl/lwjgl/lwjgl-platform/2.9.1/lwjgl-platform-2.9.1-natives-linux.jar", nativesZip(t))
	return g
}

func loadedVersion(t *testing.T, fs afero.Fs, versionsDir, id string) *version.Info {
	t.Helper()
	info := version.New(versionsDir, id)
	require.NoError(t, info.Load(context.Background(), fs))
	return info
}

func steve() auth.Method {
	return auth.Offline{PlayerName: "Steve"}
}

// fakeJava writes an executable that exits immediately.
func fakeJava(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for java needs a unix shell")
	}
	p := filepath.Join(t.TempDir(), "java")
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), p, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return p
}
