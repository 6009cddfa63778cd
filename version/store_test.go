package version

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMeta(t, fs, base, "1.19.4", vanillaJSON)
	writeMeta(t, fs, base, "fabric-1.19.4", fabricJSON)
	writeMeta(t, fs, base, "1.7.10", legacyJSON)
	writeMeta(t, fs, base, "broken", `{`)
	require.NoError(t, fs.MkdirAll(base+"/empty-dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, base+"/launcher_profiles.json", []byte("{}"), 0o644))

	entries, err := List(fs, base)
	require.NoError(t, err)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"fabric-1.19.4", "1.19.4", "1.7.10"}, ids)
	assert.Equal(t, "1.19.4", entries[0].Inherits)
	assert.Equal(t, "release", entries[1].Type)
}

func TestListMissingDir(t *testing.T) {
	entries, err := List(afero.NewMemMapFs(), "/nope")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeMeta(t, fs, base, "1.19.4", vanillaJSON)

	assert.True(t, Exists(fs, base, "1.19.4"))
	assert.False(t, Exists(fs, base, "missing-version"))
}

func TestNewer(t *testing.T) {
	testCases := []struct {
		a, b string
		want bool
	}{
		{"1.20", "1.19.4", true},
		{"1.19.4", "1.20", false},
		{"1.9", "1.10", false},
		{"1.19.4", "23w13a", true},
		{"23w13a", "1.19.4", false},
		{"23w14a", "23w13a", true},
	}
	for _, tc := range testCases {
		t.Run(tc.a+"_vs_"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, Newer(tc.a, tc.b))
		})
	}
}
