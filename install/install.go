// Package install downloads game versions and Java runtimes into a game
// root laid out as versions/, libraries/, assets/ and runtime/.
//
// Every file with a published sha1 is verified, and files already on disk
// with the right digest are skipped, so running an install twice is cheap
// and an interrupted install picks up where it stopped.
package install

import (
	"TUI-MC-Launcher/version"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cavaliergopher/grab/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	// ErrCancelled is returned when the context ends mid-install.
	ErrCancelled = errors.New("operation cancelled")
	// ErrUnknownVersion is returned for ids neither published nor installed.
	ErrUnknownVersion = errors.New("version not found in manifest")
)

const (
	// DefaultResourcesURL serves asset objects by hash.
	DefaultResourcesURL = "https://resources.download.minecraft.net"
	// DefaultConcurrency bounds parallel downloads.
	DefaultConcurrency = 8

	userAgent       = "tui-mc-launcher"
	maxParentChain  = 16
	metadataTimeout = 30 * time.Second
)

// Installer fetches game files into Root.
type Installer struct {
	Root         string
	ManifestURL  string
	RuntimeURL   string
	ResourcesURL string
	Concurrency  int
	Env          version.Environment
	OnProgress   ProgressFunc

	http   *http.Client
	client *grab.Client
	fs     afero.Fs
}

// New returns an installer for the game root using the public endpoints.
func New(root string) *Installer {
	client := grab.NewClient()
	client.UserAgent = userAgent
	return &Installer{
		Root:         root,
		ManifestURL:  DefaultManifestURL,
		RuntimeURL:   DefaultRuntimeURL,
		ResourcesURL: DefaultResourcesURL,
		Concurrency:  DefaultConcurrency,
		Env:          version.CurrentEnvironment(),
		http:         &http.Client{Timeout: metadataTimeout},
		client:       client,
		fs:           afero.NewOsFs(),
	}
}

// VersionsDir is the version store inside Root.
func (i *Installer) VersionsDir() string {
	return filepath.Join(i.Root, "versions")
}

func (i *Installer) concurrency() int {
	if i.Concurrency < 1 {
		return 1
	}
	return i.Concurrency
}

func (i *Installer) report(p Progress) {
	if i.OnProgress != nil {
		i.OnProgress(p)
	}
}

// Manifest fetches the published version list.
func (i *Installer) Manifest(ctx context.Context) (*Manifest, error) {
	i.report(Progress{Stage: StageManifest})
	return FetchManifest(ctx, i.http, i.ManifestURL)
}

// InstallVersion downloads everything needed to launch id: its metadata and
// that of every version it inherits from, the client jar, the libraries and
// natives allowed on Env, and the assets. It returns the loaded version.
func (i *Installer) InstallVersion(ctx context.Context, id string) (*version.Info, error) {
	m, err := i.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	return i.InstallFrom(ctx, m, id)
}

// InstallFrom is InstallVersion with an already fetched manifest.
func (i *Installer) InstallFrom(ctx context.Context, m *Manifest, id string) (*version.Info, error) {
	log.Info().Str("version", id).Str("root", i.Root).Msg("installing version")

	if err := i.installMetadata(ctx, m, id, 0); err != nil {
		return nil, err
	}

	info := version.New(i.VersionsDir(), id)
	if err := info.Load(ctx, i.fs); err != nil {
		return nil, fmt.Errorf("installed metadata for %s is unusable: %w", id, err)
	}

	if err := i.installClient(ctx, info); err != nil {
		return nil, err
	}
	if err := i.fetchAll(ctx, StageLibraries, i.libraryJobs(info.Meta)); err != nil {
		return nil, fmt.Errorf("library download failed: %w", err)
	}
	if err := i.installAssets(ctx, info.Meta); err != nil {
		return nil, fmt.Errorf("asset download failed: %w", err)
	}

	i.report(Progress{Stage: StageDone})
	log.Info().Str("version", id).Msg("version installed")
	return info, nil
}

// installMetadata fetches <id>.json and walks inheritsFrom. Ids missing from
// the manifest are accepted when their metadata is already installed, which
// is how modded profiles arrive.
func (i *Installer) installMetadata(ctx context.Context, m *Manifest, id string, depth int) error {
	if depth >= maxParentChain {
		return fmt.Errorf("inheritsFrom chain of %s is too deep", id)
	}

	metaPath := version.MetaPath(i.VersionsDir(), id)
	if remote, ok := m.Find(id); ok {
		err := i.fetchAll(ctx, StageMetadata, []job{{URL: remote.URL, Path: metaPath, SHA1: remote.SHA1}})
		if err != nil {
			return fmt.Errorf("metadata download for %s failed: %w", id, err)
		}
	} else if !version.Exists(i.fs, i.VersionsDir(), id) {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, id)
	}

	meta, err := version.ReadMeta(i.fs, i.VersionsDir(), id)
	if err != nil {
		return err
	}
	if meta.InheritsFrom != "" {
		return i.installMetadata(ctx, m, meta.InheritsFrom, depth+1)
	}
	return nil
}

func (i *Installer) installClient(ctx context.Context, info *version.Info) error {
	client, ok := info.Meta.Downloads["client"]
	if !ok {
		if present(info.JarPath(), "") {
			return nil
		}
		return fmt.Errorf("%s has no client download and %s is missing", info.ID, info.JarPath())
	}
	err := i.fetchAll(ctx, StageClient, []job{{URL: client.URL, Path: info.JarPath(), SHA1: client.SHA1, Size: client.Size}})
	if err != nil {
		return fmt.Errorf("client download failed: %w", err)
	}
	return nil
}

func (i *Installer) libraryJobs(meta *version.Meta) []job {
	libDir := filepath.Join(i.Root, "libraries")
	var jobs []job
	add := func(d *version.Download) {
		if d == nil || d.URL == "" {
			return
		}
		jobs = append(jobs, job{
			URL:  d.URL,
			Path: filepath.Join(libDir, filepath.FromSlash(d.Path)),
			SHA1: d.SHA1,
			Size: d.Size,
		})
	}

	for _, lib := range meta.Libraries {
		if !version.Allowed(lib.Rules, i.Env) {
			continue
		}
		art, err := lib.Artifact()
		if err != nil {
			log.Warn().Err(err).Str("library", lib.Name).Msg("skipping library")
			continue
		}
		add(art)
		native, err := lib.Native(i.Env)
		if err != nil {
			log.Warn().Err(err).Str("library", lib.Name).Msg("skipping natives")
			continue
		}
		add(native)
	}
	return jobs
}

type assetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

type assetIndex struct {
	Objects        map[string]assetObject `json:"objects"`
	Virtual        bool                   `json:"virtual"`
	MapToResources bool                   `json:"map_to_resources"`
}

func (i *Installer) installAssets(ctx context.Context, meta *version.Meta) error {
	if meta.AssetIndex == nil {
		return nil
	}
	assetsDir := filepath.Join(i.Root, "assets")
	id := meta.AssetsID()
	indexPath := filepath.Join(assetsDir, "indexes", id+".json")

	ai := meta.AssetIndex
	if err := i.fetchAll(ctx, StageAssets, []job{{URL: ai.URL, Path: indexPath, SHA1: ai.SHA1, Size: ai.Size}}); err != nil {
		return err
	}

	data, err := afero.ReadFile(i.fs, indexPath)
	if err != nil {
		return fmt.Errorf("failed to read asset index: %w", err)
	}
	var index assetIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("failed to parse asset index %s: %w", indexPath, err)
	}

	names := make([]string, 0, len(index.Objects))
	for name := range index.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	virtualDir := filepath.Join(assetsDir, "virtual", id)
	jobs := make([]job, 0, len(names))
	for _, name := range names {
		obj := index.Objects[name]
		if len(obj.Hash) < 2 {
			return fmt.Errorf("asset %s has a malformed hash %q", name, obj.Hash)
		}
		prefix := obj.Hash[:2]
		jobs = append(jobs, job{
			URL:  i.ResourcesURL + "/" + prefix + "/" + obj.Hash,
			Path: filepath.Join(assetsDir, "objects", prefix, obj.Hash),
			SHA1: obj.Hash,
			Size: obj.Size,
		})
	}
	if err := i.fetchAll(ctx, StageAssets, jobs); err != nil {
		return err
	}

	// pre-1.7 versions read assets by name instead of hash
	if index.Virtual || index.MapToResources {
		for _, name := range names {
			obj := index.Objects[name]
			src := filepath.Join(assetsDir, "objects", obj.Hash[:2], obj.Hash)
			dst := filepath.Join(virtualDir, filepath.FromSlash(name))
			if present(dst, obj.Hash) {
				continue
			}
			if err := copyFile(src, dst); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0750); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", dst, err)
	}
	return out.Close()
}
