package install

import (
	"TUI-MC-Launcher/version"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestInstallVersion(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)
	root := t.TempDir()

	var mu sync.Mutex
	var stages []Stage
	inst := newTestInstaller(s, root)
	inst.OnProgress = func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		stages = append(stages, p.Stage)
		assert.LessOrEqual(t, p.FilesDone, p.FilesTotal)
	}

	info, err := inst.InstallVersion(context.Background(), "1.0")
	require.NoError(t, err)
	require.True(t, info.Loaded())
	assert.Equal(t, "net.minecraft.client.main.Main", info.Meta.MainClass)

	assert.Equal(t, "client-jar", readFile(t, filepath.Join(root, "versions", "1.0", "1.0.jar")))
	assert.Equal(t, "library-jar", readFile(t, filepath.Join(root, "libraries", "com", "example", "lib", "1.0", "lib-1.0.jar")))
	assert.NoFileExists(t, filepath.Join(root, "libraries", "com", "example", "mac-only", "1.0", "mac-only-1.0.jar"))
	assert.FileExists(t, filepath.Join(root, "assets", "indexes", "legacy.json"))
	for name, body := range assetFiles {
		hash := sha1hex(body)
		assert.Equal(t, string(body), readFile(t, filepath.Join(root, "assets", "objects", hash[:2], hash)))
		assert.Equal(t, string(body), readFile(t, filepath.Join(root, "assets", "virtual", "legacy", filepath.FromSlash(name))))
	}
	assert.True(t, version.Exists(inst.fs, inst.VersionsDir(), "1.0"))

	mu.Lock()
	assert.Equal(t, StageManifest, stages[0])
	assert.Contains(t, stages, StageLibraries)
	assert.Contains(t, stages, StageAssets)
	assert.Equal(t, StageDone, stages[len(stages)-1])
	mu.Unlock()
}

func TestInstallVersionSkipsPresentFiles(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)
	root := t.TempDir()
	inst := newTestInstaller(s, root)

	_, err := inst.InstallVersion(context.Background(), "1.0")
	require.NoError(t, err)
	_, err = inst.InstallVersion(context.Background(), "1.0")
	require.NoError(t, err)

	assert.Equal(t, 2, s.getCount("/manifest.json"))
	assert.Equal(t, 1, s.getCount("/client.jar"))
	assert.Equal(t, 1, s.getCount("/lib.jar"))
	assert.Equal(t, 1, s.getCount("/v/1.0.json"))
}

func TestInstallVersionReplacesDamagedFile(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)
	root := t.TempDir()
	inst := newTestInstaller(s, root)

	jar := filepath.Join(root, "versions", "1.0", "1.0.jar")
	require.NoError(t, os.MkdirAll(filepath.Dir(jar), 0o755))
	require.NoError(t, os.WriteFile(jar, []byte("client-jaX"), 0o644))

	_, err := inst.InstallVersion(context.Background(), "1.0")
	require.NoError(t, err)
	assert.Equal(t, "client-jar", readFile(t, jar))
}

func TestInstallVersionChecksumMismatch(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)
	s.putJSON(t, "/manifest.json", Manifest{Versions: []RemoteVersion{
		{ID: "1.0", Type: "release", URL: s.URL + "/v/1.0.json", SHA1: strings.Repeat("0", 40)},
	}})
	root := t.TempDir()

	_, err := newTestInstaller(s, root).InstallVersion(context.Background(), "1.0")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(root, "versions", "1.0", "1.0.json"))
}

func TestInstallVersionUnknown(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)

	_, err := newTestInstaller(s, t.TempDir()).InstallVersion(context.Background(), "9.9")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestInstallVersionManifestUnavailable(t *testing.T) {
	s := newFakeServer(t)

	_, err := newTestInstaller(s, t.TempDir()).InstallVersion(context.Background(), "1.0")
	assert.Error(t, err)
}

func TestInstallInheritedProfile(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)
	s.put("/maven/net/fabricmc/loader/0.14.0/loader-0.14.0.jar", []byte("loader"))
	root := t.TempDir()

	profile := `{"id": "1.0-fabric", "inheritsFrom": "1.0",
	  "mainClass": "net.fabricmc.loader.launch.knot.KnotClient",
	  "libraries": [{"name": "net.fabricmc:loader:0.14.0", "url": "` + s.URL + `/maven/"}]}`
	dir := filepath.Join(root, "versions", "1.0-fabric")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.0-fabric.json"), []byte(profile), 0o644))

	info, err := newTestInstaller(s, root).InstallVersion(context.Background(), "1.0-fabric")
	require.NoError(t, err)

	assert.Equal(t, "net.fabricmc.loader.launch.knot.KnotClient", info.Meta.MainClass)
	assert.Equal(t, filepath.Join(root, "versions", "1.0", "1.0.jar"), info.JarPath())
	assert.FileExists(t, info.JarPath())
	assert.Equal(t, "loader", readFile(t, filepath.Join(root, "libraries", "net", "fabricmc", "loader", "0.14.0", "loader-0.14.0.jar")))
	assert.FileExists(t, filepath.Join(root, "libraries", "com", "example", "lib", "1.0", "lib-1.0.jar"))
}

func TestInstallVersionCancelled(t *testing.T) {
	s := newFakeServer(t)
	publishVersion(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestInstaller(s, t.TempDir()).InstallVersion(ctx, "1.0")
	assert.Error(t, err)
}

func TestManifestFilter(t *testing.T) {
	at := func(day int) version.Timestamp {
		return version.Timestamp(time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC))
	}
	m := &Manifest{Versions: []RemoteVersion{
		{ID: "1.18.2", Type: "release", ReleaseTime: at(1)},
		{ID: "23w13a", Type: "snapshot", ReleaseTime: at(5)},
		{ID: "1.19.4", Type: "release", ReleaseTime: at(4)},
		{ID: "1.19", Type: "release", ReleaseTime: at(2)},
	}}

	testCases := []struct {
		name        string
		versionType string
		minVersion  string
		want        []string
		wantErr     bool
	}{
		{name: "all", want: []string{"23w13a", "1.19.4", "1.19", "1.18.2"}},
		{name: "releases", versionType: "release", want: []string{"1.19.4", "1.19", "1.18.2"}},
		{name: "minimum", versionType: "release", minVersion: "1.19", want: []string{"1.19.4", "1.19"}},
		{name: "bad minimum", minVersion: "not a version", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Filter(tc.versionType, tc.minVersion)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}

	v, ok := m.Find("1.19")
	assert.True(t, ok)
	assert.Equal(t, "release", v.Type)
	_, ok = m.Find("2.0")
	assert.False(t, ok)
}

func TestProgressFraction(t *testing.T) {
	assert.Equal(t, 0.0, Progress{}.Fraction())
	assert.Equal(t, 0.5, Progress{FilesDone: 2, FilesTotal: 4}.Fraction())
	assert.Equal(t, "Java runtime", StageRuntime.String())
	assert.Equal(t, "Unknown", Stage(99).String())
}
