package version

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"

	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Entry is one installed version as listed by the store.
type Entry struct {
	ID          string
	Type        string
	ReleaseTime Timestamp
	Inherits    string
}

// List enumerates the versions in baseDir that have readable metadata,
// newest first. Directories with unreadable metadata are logged and skipped.
func List(fs afero.Fs, baseDir string) ([]Entry, error) {
	var entries []Entry
	dirs, err := afero.ReadDir(fs, baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to read versions directory %s: %w", baseDir, err)
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		meta, err := ReadMeta(fs, baseDir, dir.Name())
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Warn().Err(err).Str("dir", dir.Name()).Msg("skipping version directory")
			}
			continue
		}
		entries = append(entries, Entry{
			ID:          dir.Name(),
			Type:        meta.Type,
			ReleaseTime: meta.ReleaseTime,
			Inherits:    meta.InheritsFrom,
		})
	}

	SortEntries(entries)
	return entries, nil
}

// Exists reports whether baseDir holds metadata for id.
func Exists(fs afero.Fs, baseDir, id string) bool {
	ok, err := afero.Exists(fs, MetaPath(baseDir, id))
	return err == nil && ok
}

// SortEntries orders entries newest first: by release time when both have
// one, then by semantic version, then by id.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].ReleaseTime.Time(), entries[j].ReleaseTime.Time()
		if !ti.IsZero() && !tj.IsZero() && !ti.Equal(tj) {
			return ti.After(tj)
		}
		return Newer(entries[i].ID, entries[j].ID)
	})
}

// releaseID matches release, pre-release and release-candidate ids. Weekly
// snapshots such as 23w13a would otherwise parse as major version 23.
var releaseID = regexp.MustCompile(`^\d+\.\d+(\.\d+)?(-(pre|rc)\d+)?$`)

func parseRelease(id string) (*goversion.Version, error) {
	if !releaseID.MatchString(id) {
		return nil, fmt.Errorf("%q is not a release id", id)
	}
	return goversion.NewVersion(id)
}

// Newer reports whether id a sorts before id b in a newest-first listing.
// Ids that are not releases (snapshots, modded profiles) fall back to a
// reverse string comparison and sort after releases.
func Newer(a, b string) bool {
	va, errA := parseRelease(a)
	vb, errB := parseRelease(b)
	switch {
	case errA == nil && errB == nil:
		if !va.Equal(vb) {
			return va.GreaterThan(vb)
		}
		return a > b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a > b
	}
}
