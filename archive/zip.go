// Package archive unpacks the native library jars a version needs at runtime.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrUnsafePath is returned for entries that would land outside destDir.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// ExtractZip unpacks archivePath into destDir. Entries whose names start with
// one of the exclude prefixes (e.g. "META-INF/") are skipped.
func ExtractZip(ctx context.Context, fs afero.Fs, archivePath, destDir string, exclude []string) error {
	file, err := fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}

	zipReader, err := zip.NewReader(file, info.Size())
	if errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, archivePath)
	}
	if err != nil {
		return fmt.Errorf("failed to read zip archive %s: %w", archivePath, err)
	}

	if err := fs.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	copyBuffer := make([]byte, 32*1024)
	for _, entry := range zipReader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded(entry.Name, exclude) {
			continue
		}

		targetPath, err := safeJoin(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := fs.MkdirAll(targetPath, 0750); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
			continue
		}

		if err := fs.MkdirAll(filepath.Dir(targetPath), 0750); err != nil {
			return fmt.Errorf("failed to create parent directory for %s: %w", targetPath, err)
		}
		if err := extractEntry(fs, entry, targetPath, copyBuffer); err != nil {
			return err
		}
	}

	return nil
}

func extractEntry(fs afero.Fs, entry *zip.File, targetPath string, buf []byte) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open zip entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	outFile, err := fs.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", targetPath, err)
	}

	if _, err := io.CopyBuffer(outFile, rc, buf); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to extract file %s: %w", targetPath, err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", targetPath, err)
	}
	return nil
}

func excluded(name string, exclude []string) bool {
	for _, prefix := range exclude {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func safeJoin(destDir, name string) (string, error) {
	targetPath := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, targetPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return targetPath, nil
}
