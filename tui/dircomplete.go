package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// PathCompletions returns the entries of fs completing input. With dirsOnly
// set, files are left out.
func PathCompletions(fs afero.Fs, input string, dirsOnly bool) ([]string, error) {
	if input == "" {
		input = "." + string(os.PathSeparator)
	}
	if strings.HasPrefix(input, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			input = filepath.Join(home, input[1:])
		}
	}

	base, prefix := filepath.Dir(input), filepath.Base(input)
	if strings.HasSuffix(input, string(os.PathSeparator)) {
		base, prefix = filepath.Clean(input), ""
	}

	entries, err := afero.ReadDir(fs, base)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, entry := range entries {
		if dirsOnly && !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, filepath.Join(base, entry.Name()))
		}
	}
	return matches, nil
}

func isDirectory(fs afero.Fs, path string) (bool, error) {
	return afero.IsDir(fs, path)
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
