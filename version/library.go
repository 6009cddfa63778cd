package version

import (
	"fmt"
	"path"
	"strings"
)

// ArtifactPath converts a maven coordinate (group:artifact:version[:classifier])
// into its repository-relative path.
func ArtifactPath(name, classifier string) (string, error) {
	parts := strings.Split(name, ":")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("malformed library name %q", name)
	}
	group, artifact, ver := parts[0], parts[1], parts[2]
	if classifier == "" && len(parts) > 3 {
		classifier = parts[3]
	}

	ext := "jar"
	if i := strings.Index(ver, "@"); i >= 0 {
		ver, ext = ver[:i], ver[i+1:]
	}

	file := artifact + "-" + ver
	if classifier != "" {
		file += "-" + classifier
	}
	return path.Join(strings.ReplaceAll(group, ".", "/"), artifact, ver, file+"."+ext), nil
}

// Artifact returns the classpath download for the library, synthesising one
// from the maven name when the metadata has no explicit artifact.
func (l Library) Artifact() (*Download, error) {
	if l.Downloads != nil && l.Downloads.Artifact != nil {
		d := *l.Downloads.Artifact
		if d.Path == "" {
			p, err := ArtifactPath(l.Name, "")
			if err != nil {
				return nil, err
			}
			d.Path = p
		}
		return &d, nil
	}
	if l.Downloads != nil && len(l.Downloads.Classifiers) > 0 && len(l.Natives) > 0 {
		// natives-only entry (pre-1.19 layout)
		return nil, nil
	}

	p, err := ArtifactPath(l.Name, "")
	if err != nil {
		return nil, err
	}
	base := l.URL
	if base == "" {
		base = "https://libraries.minecraft.net/"
	}
	return &Download{Path: p, URL: strings.TrimSuffix(base, "/") + "/" + p}, nil
}

// Native returns the natives archive for env, or nil when the library has
// none for that platform.
func (l Library) Native(env Environment) (*Download, error) {
	classifier, ok := l.Natives[env.OS]
	if !ok {
		return nil, nil
	}
	classifier = strings.ReplaceAll(classifier, "${arch}", env.Bits())

	if l.Downloads != nil {
		if d, ok := l.Downloads.Classifiers[classifier]; ok {
			if d.Path == "" {
				p, err := ArtifactPath(l.Name, classifier)
				if err != nil {
					return nil, err
				}
				d.Path = p
			}
			return &d, nil
		}
	}

	p, err := ArtifactPath(l.Name, classifier)
	if err != nil {
		return nil, err
	}
	base := l.URL
	if base == "" {
		base = "https://libraries.minecraft.net/"
	}
	return &Download{Path: p, URL: strings.TrimSuffix(base, "/") + "/" + p}, nil
}
