package version

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const vanillaJSON = `{
  "id": "1.19.4",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "assets": "3",
  "assetIndex": {"id": "3", "sha1": "aa", "size": 1, "totalSize": 2, "url": "https://example.invalid/3.json"},
  "downloads": {"client": {"sha1": "bb", "size": 3, "url": "https://example.invalid/client.jar"}},
  "javaVersion": {"component": "java-runtime-gamma", "majorVersion": 17},
  "releaseTime": "2023-03-14T12:56:18+00:00",
  "time": "2023-03-14T12:56:18+00:00",
  "arguments": {
    "game": [
      "--username", "${auth_player_name}",
      "--version", "${version_name}",
      {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"},
      {"rules": [{"action": "allow", "features": {"has_custom_resolution": true}}], "value": ["--width", "${resolution_width}"]}
    ],
    "jvm": [
      {"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]},
      "-Djava.library.path=${natives_directory}",
      "-cp", "${classpath}"
    ]
  },
  "libraries": [
    {"name": "com.mojang:brigadier:1.0.18",
     "downloads": {"artifact": {"path": "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar", "sha1": "cc", "size": 4, "url": "https://example.invalid/brigadier.jar"}}},
    {"name": "org.lwjgl:lwjgl:3.3.1:natives-macos",
     "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-macos.jar", "sha1": "dd", "size": 5, "url": "https://example.invalid/lwjgl-macos.jar"}},
     "rules": [{"action": "allow", "os": {"name": "osx"}}]}
  ]
}`

const fabricJSON = `{
  "id": "fabric-1.19.4",
  "inheritsFrom": "1.19.4",
  "mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
  "releaseTime": "2023-04-01T00:00:00+00:00",
  "arguments": {"game": [], "jvm": ["-DFabricMcEmu= net.minecraft.client.main.Main "]},
  "libraries": [{"name": "net.fabricmc:fabric-loader:0.14.19", "url": "https://maven.fabricmc.net/"}]
}`

const legacyJSON = `{
  "id": "1.7.10",
  "type": "release",
  "mainClass": "net.minecraft.client.main.Main",
  "assets": "1.7.10",
  "minecraftArguments": "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory}",
  "releaseTime": "2014-05-14T17:29:23+00:00",
  "libraries": [
    {"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.1",
     "natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}", "osx": "natives-osx"},
     "extract": {"exclude": ["META-INF/"]},
     "downloads": {"classifiers": {
       "natives-linux": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.1/lwjgl-platform-2.9.1-natives-linux.jar", "sha1": "ee", "size": 6, "url": "https://example.invalid/linux.jar"},
       "natives-windows-64": {"path": "org/lwjgl/lwjgl/lwjgl-platform/2.9.1/lwjgl-platform-2.9.1-natives-windows-64.jar", "sha1": "ff", "size": 7, "url": "https://example.invalid/win.jar"}
     }}}
  ]
}`

func writeMeta(t *testing.T, fs afero.Fs, baseDir, id, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(baseDir+"/"+id, 0o755))
	require.NoError(t, afero.WriteFile(fs, MetaPath(baseDir, id), []byte(content), 0o644))
}
