package version

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentUnmarshal(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantValues []string
		wantRules  int
		wantErr    bool
	}{
		{name: "plain string", input: `"--username"`, wantValues: []string{"--username"}},
		{
			name:       "gated string",
			input:      `{"rules":[{"action":"allow","features":{"is_demo_user":true}}],"value":"--demo"}`,
			wantValues: []string{"--demo"},
			wantRules:  1,
		},
		{
			name:       "gated list",
			input:      `{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":["-XstartOnFirstThread","-Dx"]}`,
			wantValues: []string{"-XstartOnFirstThread", "-Dx"},
			wantRules:  1,
		},
		{name: "null entry", input: `null`},
		{
			name:      "gated null value",
			input:     `{"rules":[{"action":"allow","os":{"name":"linux"}}],"value":null}`,
			wantRules: 1,
		},
		{name: "number", input: `7`, wantErr: true},
		{name: "bad value", input: `{"value": 3}`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var arg Argument
			err := json.Unmarshal([]byte(tc.input), &arg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantValues, arg.Values)
			assert.Len(t, arg.Rules, tc.wantRules)
		})
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	var ts struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2023-03-14T12:56:18+00:00","b":1700000000}`), &ts))
	assert.Equal(t, 2023, ts.A.Time().Year())
	assert.Equal(t, int64(1700000000), ts.B.Time().Unix())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"yesterday"}`), &ts))
}

func TestTimestampNull(t *testing.T) {
	var ts struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":""}`), &ts))
	assert.True(t, ts.A.Time().IsZero())
	assert.True(t, ts.B.Time().IsZero())
}

func TestAllowed(t *testing.T) {
	linux := Environment{OS: "linux", Arch: "x86_64"}
	osx := Environment{OS: "osx", Arch: "arm64", OSVersion: "13.2"}
	demo := Environment{OS: "linux", Features: map[string]bool{"is_demo_user": true}}

	allowOSX := []Rule{{Action: "allow", OS: &OSRule{Name: "osx"}}}
	allowAllButOSX := []Rule{{Action: "allow"}, {Action: "disallow", OS: &OSRule{Name: "osx"}}}
	demoOnly := []Rule{{Action: "allow", Features: map[string]bool{"is_demo_user": true}}}
	osxVersion := []Rule{{Action: "allow", OS: &OSRule{Name: "osx", Version: `^13\.`}}}

	testCases := []struct {
		name  string
		rules []Rule
		env   Environment
		want  bool
	}{
		{"no rules", nil, linux, true},
		{"allow osx on linux", allowOSX, linux, false},
		{"allow osx on osx", allowOSX, osx, true},
		{"all but osx on linux", allowAllButOSX, linux, true},
		{"all but osx on osx", allowAllButOSX, osx, false},
		{"demo feature off", demoOnly, linux, false},
		{"demo feature on", demoOnly, demo, true},
		{"os version match", osxVersion, osx, true},
		{"os version mismatch", osxVersion, Environment{OS: "osx", OSVersion: "12.1"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allowed(tc.rules, tc.env))
		})
	}
}

func TestArtifactPath(t *testing.T) {
	testCases := []struct {
		name, coord, classifier, want string
		wantErr                       bool
	}{
		{name: "plain", coord: "com.mojang:brigadier:1.0.18", want: "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"},
		{name: "classifier arg", coord: "org.lwjgl:lwjgl:3.3.1", classifier: "natives-linux", want: "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar"},
		{name: "classifier in name", coord: "org.lwjgl:lwjgl:3.3.1:natives-linux", want: "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar"},
		{name: "extension", coord: "de.oceanlabs.mcp:mcp_config:1.19.4@zip", want: "de/oceanlabs/mcp/mcp_config/1.19.4/mcp_config-1.19.4.zip"},
		{name: "malformed", coord: "just-a-name", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ArtifactPath(tc.coord, tc.classifier)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLibraryDownloads(t *testing.T) {
	var meta Meta
	require.NoError(t, json.Unmarshal([]byte(legacyJSON), &meta))
	lib := meta.Libraries[0]

	art, err := lib.Artifact()
	require.NoError(t, err)
	assert.Nil(t, art, "natives-only libraries have no classpath artifact")

	native, err := lib.Native(Environment{OS: "windows", Arch: "x86_64"})
	require.NoError(t, err)
	require.NotNil(t, native)
	assert.Equal(t, "ff", native.SHA1)

	native, err = lib.Native(Environment{OS: "osx"})
	require.NoError(t, err)
	require.NotNil(t, native, "missing classifier entries fall back to the maven layout")
	assert.Equal(t, "org/lwjgl/lwjgl/lwjgl-platform/2.9.1/lwjgl-platform-2.9.1-natives-osx.jar", native.Path)

	fabric := Library{Name: "net.fabricmc:fabric-loader:0.14.19", URL: "https://maven.fabricmc.net/"}
	art, err = fabric.Artifact()
	require.NoError(t, err)
	assert.Equal(t, "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.14.19/fabric-loader-0.14.19.jar", art.URL)

	none, err := fabric.Native(Environment{OS: "linux"})
	require.NoError(t, err)
	assert.Nil(t, none)
}
