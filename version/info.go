// Package version reads installed game versions from a version store: a
// directory holding one sub-directory per version, each with <id>/<id>.json
// and usually <id>/<id>.jar.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when the store has no metadata for an id.
	ErrNotFound = errors.New("version not found")
	// ErrCorrupt is returned when metadata exists but cannot be used.
	ErrCorrupt = errors.New("version metadata is corrupt")
)

// maxInheritDepth bounds inheritsFrom chains.
const maxInheritDepth = 16

// Info identifies a version in a store. It starts unloaded; Load fills Meta.
type Info struct {
	BaseDir string
	ID      string
	Meta    *Meta
}

// New returns an unloaded Info.
func New(baseDir, id string) *Info {
	return &Info{BaseDir: baseDir, ID: id}
}

// Loaded reports whether the metadata has been read.
func (i *Info) Loaded() bool {
	return i != nil && i.Meta != nil
}

// Dir is the version's own directory inside the store.
func (i *Info) Dir() string {
	return filepath.Join(i.BaseDir, i.ID)
}

// GameDir is the root holding versions/, libraries/ and assets/.
func (i *Info) GameDir() string {
	return filepath.Dir(filepath.Clean(i.BaseDir))
}

// JarPath is the client jar, owned by the root of the inheritsFrom chain
// unless the metadata names another jar.
func (i *Info) JarPath() string {
	jar := i.ID
	if i.Meta != nil && i.Meta.Jar != "" {
		jar = i.Meta.Jar
	}
	return filepath.Join(i.BaseDir, jar, jar+".jar")
}

// NativesDir is where native libraries are unpacked before launch.
func (i *Info) NativesDir() string {
	return filepath.Join(i.Dir(), i.ID+"-natives")
}

// Load reads the metadata for ID and every version it inherits from. It only
// reads from fs, so repeated calls against an unchanged store give equal
// results.
func (i *Info) Load(ctx context.Context, fs afero.Fs) error {
	if i.ID == "" {
		return fmt.Errorf("%w: empty version id", ErrNotFound)
	}

	chain := make([]*Meta, 0, 2)
	seen := make(map[string]bool)
	id := i.ID
	for id != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		if seen[id] {
			return fmt.Errorf("%w: inheritsFrom cycle at %q", ErrCorrupt, id)
		}
		if len(chain) >= maxInheritDepth {
			return fmt.Errorf("%w: inheritsFrom chain deeper than %d", ErrCorrupt, maxInheritDepth)
		}
		seen[id] = true

		meta, err := ReadMeta(fs, i.BaseDir, id)
		if err != nil {
			if len(chain) > 0 {
				return fmt.Errorf("parent of %q: %w", chain[len(chain)-1].ID, err)
			}
			return err
		}
		chain = append(chain, meta)
		id = meta.InheritsFrom
	}

	merged := chain[len(chain)-1]
	for j := len(chain) - 2; j >= 0; j-- {
		merged = merge(merged, chain[j])
	}
	if merged.Jar == "" {
		merged.Jar = merged.ID
	}
	if merged.MainClass == "" {
		return fmt.Errorf("%w: %q has no mainClass", ErrCorrupt, i.ID)
	}

	i.Meta = merged
	return nil
}

// MetaPath returns versions/<id>/<id>.json.
func MetaPath(baseDir, id string) string {
	return filepath.Join(baseDir, id, id+".json")
}

// ReadMeta parses one metadata file without following inheritsFrom.
func ReadMeta(fs afero.Fs, baseDir, id string) (*Meta, error) {
	metaPath := MetaPath(baseDir, id)
	data, err := afero.ReadFile(fs, metaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, id, baseDir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", metaPath, err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrCorrupt, metaPath, err)
	}
	if meta.ID == "" {
		meta.ID = id
	}
	return &meta, nil
}
