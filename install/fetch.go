package install

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cavaliergopher/grab/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// job is one file to fetch. then, when set, runs after the file is in place,
// whether it was downloaded or already present.
type job struct {
	URL  string
	Path string
	SHA1 string
	Size int64
	then func(path string) error
}

// fileSHA1 returns the hex digest of the file at path.
func fileSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// present reports whether path already holds the expected content. A file
// without a known digest counts as present once it exists.
func present(path, sum string) bool {
	if sum == "" {
		_, err := os.Stat(path)
		return err == nil
	}
	got, err := fileSHA1(path)
	return err == nil && got == sum
}

// fetch downloads one job unless its file is already present and returns
// the number of bytes transferred.
func (i *Installer) fetch(ctx context.Context, j job) (int64, error) {
	if present(j.Path, j.SHA1) {
		return 0, nil
	}
	// stale or partial content; start over so the checksum can pass
	if err := os.Remove(j.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("failed to remove stale file %s: %w", j.Path, err)
	}
	if err := os.MkdirAll(filepath.Dir(j.Path), 0750); err != nil {
		return 0, fmt.Errorf("failed to create download dir: %w", err)
	}

	req, err := grab.NewRequest(j.Path, j.URL)
	if err != nil {
		return 0, fmt.Errorf("failed to create request for %s: %w", j.URL, err)
	}
	req = req.WithContext(ctx)
	req.NoResume = true
	if j.Size > 0 {
		req.Size = j.Size
	}
	if j.SHA1 != "" {
		sum, err := hex.DecodeString(j.SHA1)
		if err != nil {
			return 0, fmt.Errorf("bad sha1 %q for %s: %w", j.SHA1, j.URL, err)
		}
		req.SetChecksum(sha1.New(), sum, true)
	}

	resp := i.client.Do(req)
	if err := resp.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, ErrCancelled
		}
		return 0, fmt.Errorf("download of %s failed: %w", j.URL, err)
	}
	log.Trace().Str("url", j.URL).Int64("bytes", resp.BytesComplete()).Msg("downloaded")
	return resp.BytesComplete(), nil
}

// fetchAll runs jobs with bounded parallelism. The first failure cancels the
// rest.
func (i *Installer) fetchAll(ctx context.Context, stage Stage, jobs []job) error {
	jobs = dedupe(jobs)
	c := &counter{stage: stage, total: len(jobs), cb: i.OnProgress}
	i.report(Progress{Stage: stage, FilesTotal: len(jobs)})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency())
	for _, j := range jobs {
		g.Go(func() error {
			n, err := i.fetch(ctx, j)
			if err != nil {
				return err
			}
			if j.then != nil {
				if err := j.then(j.Path); err != nil {
					return err
				}
			}
			c.add(n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug().Stringer("stage", stage).Int("files", len(jobs)).Int64("bytes", c.bytes.Load()).Msg("stage complete")
	return nil
}

// dedupe drops jobs writing the same path; assets often share objects.
func dedupe(jobs []job) []job {
	seen := make(map[string]bool, len(jobs))
	out := jobs[:0:0]
	for _, j := range jobs {
		if seen[j.Path] {
			continue
		}
		seen[j.Path] = true
		out = append(out, j)
	}
	return out
}
