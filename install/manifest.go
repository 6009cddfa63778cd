package install

import (
	"TUI-MC-Launcher/version"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// DefaultManifestURL lists every published game version.
const DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// RemoteVersion is one entry of the version manifest.
type RemoteVersion struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	URL         string            `json:"url"`
	SHA1        string            `json:"sha1"`
	Time        version.Timestamp `json:"time"`
	ReleaseTime version.Timestamp `json:"releaseTime"`
}

// Manifest is the published version list.
type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []RemoteVersion `json:"versions"`
}

// Find returns the entry for id.
func (m *Manifest) Find(id string) (RemoteVersion, bool) {
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return RemoteVersion{}, false
}

// Filter returns the versions of the given type (all types when empty) that
// are at least minVersion, newest first. Ids that do not parse as versions
// are dropped once a minimum is set.
func (m *Manifest) Filter(versionType, minVersion string) ([]RemoteVersion, error) {
	var floor *goversion.Version
	if minVersion != "" {
		var err error
		floor, err = goversion.NewVersion(minVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid version filter format '%s': %w", minVersion, err)
		}
	}

	var out []RemoteVersion
	for _, v := range m.Versions {
		if versionType != "" && v.Type != versionType {
			continue
		}
		if floor != nil {
			ver, err := goversion.NewVersion(v.ID)
			if err != nil || ver.LessThan(floor) {
				continue
			}
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].ReleaseTime.Time(), out[j].ReleaseTime.Time()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return version.Newer(out[i].ID, out[j].ID)
	})
	return out, nil
}

// FetchManifest downloads the version manifest from url.
func FetchManifest(ctx context.Context, client *http.Client, url string) (*Manifest, error) {
	var m Manifest
	if err := getJSON(ctx, client, url, &m); err != nil {
		return nil, fmt.Errorf("failed to fetch version manifest: %w", err)
	}
	return &m, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status from %s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}
	return nil
}
