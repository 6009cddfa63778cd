package install

import (
	"TUI-MC-Launcher/version"
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz/lzma"
)

// DefaultRuntimeURL indexes the Java runtimes published for each platform.
const DefaultRuntimeURL = "https://launchermeta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"

// LegacyComponent is used by versions whose metadata names no runtime.
const LegacyComponent = "jre-legacy"

// ErrNoRuntime is returned when no runtime is published for the platform.
var ErrNoRuntime = errors.New("no java runtime available")

type runtimeRelease struct {
	Manifest version.Download `json:"manifest"`
	Version  struct {
		Name     string            `json:"name"`
		Released version.Timestamp `json:"released"`
	} `json:"version"`
}

type runtimeFile struct {
	Type       string                      `json:"type"` // file, directory or link
	Executable bool                        `json:"executable"`
	Target     string                      `json:"target"`
	Downloads  map[string]version.Download `json:"downloads"`
}

type runtimeManifest struct {
	Files map[string]runtimeFile `json:"files"`
}

// RuntimePlatform maps an environment to the runtime index's platform key,
// or "" when none is published.
func RuntimePlatform(env version.Environment) string {
	switch env.OS {
	case "linux":
		if env.Arch == "x86" {
			return "linux-i386"
		}
		if env.Arch == "x86_64" {
			return "linux"
		}
	case "osx":
		if env.Arch == "arm64" {
			return "mac-os-arm64"
		}
		return "mac-os"
	case "windows":
		switch env.Arch {
		case "x86":
			return "windows-x86"
		case "arm64":
			return "windows-arm64"
		default:
			return "windows-x64"
		}
	}
	return ""
}

// Component returns the runtime a version wants.
func Component(meta *version.Meta) string {
	if meta != nil && meta.JavaVersion != nil && meta.JavaVersion.Component != "" {
		return meta.JavaVersion.Component
	}
	return LegacyComponent
}

// RuntimeDir is where a runtime component is installed under root.
func RuntimeDir(root, component string) string {
	return filepath.Join(root, "runtime", component)
}

// JavaExecutable is the java binary inside an installed runtime.
func JavaExecutable(runtimeDir string, env version.Environment) string {
	switch env.OS {
	case "osx":
		return filepath.Join(runtimeDir, "jre.bundle", "Contents", "Home", "bin", "java")
	case "windows":
		return filepath.Join(runtimeDir, "bin", "java.exe")
	default:
		return filepath.Join(runtimeDir, "bin", "java")
	}
}

// InstallRuntime downloads the newest release of component for Env and
// returns the path of its java executable.
func (i *Installer) InstallRuntime(ctx context.Context, component string) (string, error) {
	platform := RuntimePlatform(i.Env)
	if platform == "" {
		return "", fmt.Errorf("%w for %s/%s", ErrNoRuntime, i.Env.OS, i.Env.Arch)
	}

	var index map[string]map[string][]runtimeRelease
	if err := getJSON(ctx, i.http, i.RuntimeURL, &index); err != nil {
		return "", fmt.Errorf("failed to fetch runtime index: %w", err)
	}
	releases := index[platform][component]
	if len(releases) == 0 {
		return "", fmt.Errorf("%w: %s on %s", ErrNoRuntime, component, platform)
	}
	release := releases[0]
	log.Info().
		Str("component", component).
		Str("platform", platform).
		Str("release", release.Version.Name).
		Msg("installing java runtime")

	dir := RuntimeDir(i.Root, component)
	manifestPath := filepath.Join(i.Root, "runtime", component+".json")
	mj := job{URL: release.Manifest.URL, Path: manifestPath, SHA1: release.Manifest.SHA1, Size: release.Manifest.Size}
	if err := i.fetchAll(ctx, StageRuntime, []job{mj}); err != nil {
		return "", fmt.Errorf("runtime manifest download failed: %w", err)
	}
	data, err := afero.ReadFile(i.fs, manifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to read runtime manifest: %w", err)
	}
	var manifest runtimeManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("failed to parse runtime manifest %s: %w", manifestPath, err)
	}

	names := make([]string, 0, len(manifest.Files))
	for name := range manifest.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	var jobs []job
	var links []string
	for _, name := range names {
		f := manifest.Files[name]
		dst := filepath.Join(dir, filepath.FromSlash(name))
		switch f.Type {
		case "directory":
			if err := os.MkdirAll(dst, 0755); err != nil {
				return "", fmt.Errorf("failed to create %s: %w", dst, err)
			}
		case "link":
			links = append(links, name)
		case "file":
			j, err := runtimeJob(f, dst)
			if err != nil {
				return "", fmt.Errorf("runtime file %s: %w", name, err)
			}
			jobs = append(jobs, j)
		}
	}

	if err := i.fetchAll(ctx, StageRuntime, jobs); err != nil {
		return "", fmt.Errorf("runtime download failed: %w", err)
	}

	if runtime.GOOS != "windows" {
		for _, name := range links {
			dst := filepath.Join(dir, filepath.FromSlash(name))
			if err := relink(manifest.Files[name].Target, dst); err != nil {
				return "", err
			}
		}
	}

	i.report(Progress{Stage: StageDone})
	return JavaExecutable(dir, i.Env), nil
}

// runtimeJob prefers the LZMA download when the file is not already in
// place; the raw digest is checked after unpacking.
func runtimeJob(f runtimeFile, dst string) (job, error) {
	raw, ok := f.Downloads["raw"]
	if !ok {
		return job{}, errors.New("no raw download")
	}
	mode := os.FileMode(0644)
	if f.Executable {
		mode = 0755
	}
	chmod := func(path string) error { return os.Chmod(path, mode) }

	lz, ok := f.Downloads["lzma"]
	if !ok || present(dst, raw.SHA1) {
		return job{URL: raw.URL, Path: dst, SHA1: raw.SHA1, Size: raw.Size, then: chmod}, nil
	}
	return job{
		URL:  lz.URL,
		Path: dst + ".lzma",
		SHA1: lz.SHA1,
		Size: lz.Size,
		then: func(src string) error {
			if err := unpackLZMA(src, dst, raw.SHA1); err != nil {
				return err
			}
			if err := os.Remove(src); err != nil {
				log.Warn().Err(err).Str("path", src).Msg("failed to remove compressed runtime file")
			}
			return chmod(dst)
		},
	}, nil
}

func unpackLZMA(src, dst, sum string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	r, err := lzma.NewReader(bufio.NewReader(in))
	if err != nil {
		return fmt.Errorf("failed to create lzma reader for %s: %w", src, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	h := sha1.New()
	if _, err := io.Copy(io.MultiWriter(out, h), r); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to decompress %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	if got := hex.EncodeToString(h.Sum(nil)); sum != "" && got != sum {
		os.Remove(dst)
		return fmt.Errorf("checksum mismatch for %s: got %s, want %s", dst, got, sum)
	}
	return nil
}

func relink(target, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent dir for symlink %s: %w", dst, err)
	}
	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("failed to remove existing file/link at %s: %w", dst, err)
		}
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s: %w", dst, target, err)
	}
	return nil
}
