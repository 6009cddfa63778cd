package launch

import (
	"TUI-MC-Launcher/version"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ResolveVersion loads the metadata of versionID from the store at baseDir.
// Every failure wraps ErrVersionResolution.
func ResolveVersion(ctx context.Context, fs afero.Fs, baseDir, versionID string) (*version.Info, error) {
	info := version.New(baseDir, versionID)
	if err := info.Load(ctx, fs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVersionResolution, err)
	}

	log.Debug().
		Str("version", versionID).
		Str("main_class", info.Meta.MainClass).
		Int("libraries", len(info.Meta.Libraries)).
		Msg("version resolved")
	return info, nil
}
