package version

import (
	"regexp"
	"runtime"
)

// OSRule restricts a rule to a platform.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"` // regular expression
}

// Rule allows or disallows a library or argument.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OSRule         `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// Environment is what rules are evaluated against.
type Environment struct {
	OS        string // "windows", "osx" or "linux"
	Arch      string // "x86", "x86_64", "arm64"
	OSVersion string
	Features  map[string]bool
}

// CurrentEnvironment describes the running platform with every feature off.
func CurrentEnvironment() Environment {
	return Environment{
		OS:   OSName(runtime.GOOS),
		Arch: ArchName(runtime.GOARCH),
	}
}

// OSName maps a GOOS value to the name used in version metadata.
func OSName(goos string) string {
	switch goos {
	case "darwin":
		return "osx"
	default:
		return goos
	}
}

// ArchName maps a GOARCH value to the name used in version metadata.
func ArchName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x86_64"
	default:
		return goarch
	}
}

// Bits is the value substituted for ${arch} in native classifiers.
func (e Environment) Bits() string {
	if e.Arch == "x86" {
		return "32"
	}
	return "64"
}

func (r Rule) matches(env Environment) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != env.OS {
			return false
		}
		if r.OS.Arch != "" && r.OS.Arch != env.Arch {
			return false
		}
		if r.OS.Version != "" {
			re, err := regexp.Compile(r.OS.Version)
			if err != nil || !re.MatchString(env.OSVersion) {
				return false
			}
		}
	}
	for feature, want := range r.Features {
		if env.Features[feature] != want {
			return false
		}
	}
	return true
}

// Allowed evaluates a rule list: no rules means allowed, otherwise the last
// matching rule decides and the default is disallowed.
func Allowed(rules []Rule, env Environment) bool {
	if len(rules) == 0 {
		return true
	}
	allowed := false
	for _, r := range rules {
		if r.matches(env) {
			allowed = r.Action == "allow"
		}
	}
	return allowed
}
