package version

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp decodes the release/update times found in version metadata.
type Timestamp time.Time

// UnmarshalJSON implements the json.Unmarshaler interface for Timestamp.
// Metadata carries RFC3339 strings; some mirrors serve Unix seconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*t = Timestamp(time.Time{})
		return nil
	}

	var seconds int64
	if err := json.Unmarshal(b, &seconds); err == nil {
		*t = Timestamp(time.Unix(seconds, 0).UTC())
		return nil
	}

	var timeStr string
	if err := json.Unmarshal(b, &timeStr); err != nil {
		return fmt.Errorf("timestamp is neither a number nor a string: %w", err)
	}
	if timeStr == "" {
		*t = Timestamp(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return fmt.Errorf("bad timestamp %q: %w", timeStr, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// MarshalJSON writes the timestamp back as RFC3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

// Time returns the underlying time.Time value.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// isNull reports whether b is absent or the JSON null literal.
func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// Download is a remote file with its expected digest.
type Download struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// AssetIndex points at the JSON listing a version's asset objects.
type AssetIndex struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// JavaVersion names the runtime component a version was built for.
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// LibraryDownloads holds the main artifact and per-platform classifiers.
type LibraryDownloads struct {
	Artifact    *Download           `json:"artifact,omitempty"`
	Classifiers map[string]Download `json:"classifiers,omitempty"`
}

// Extract lists archive prefixes skipped when unpacking natives.
type Extract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// Library is one classpath or native dependency.
type Library struct {
	Name      string            `json:"name"`
	URL       string            `json:"url,omitempty"` // maven repository base for entries without downloads
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Extract   *Extract          `json:"extract,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
}

// Argument is a single entry of arguments.game or arguments.jvm. Entries are
// either a plain string or an object gating one or more values on rules.
type Argument struct {
	Values []string
	Rules  []Rule
}

// UnmarshalJSON implements the json.Unmarshaler interface for Argument.
func (a *Argument) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*a = Argument{}
		return nil
	}

	var plain string
	if err := json.Unmarshal(b, &plain); err == nil {
		*a = Argument{Values: []string{plain}}
		return nil
	}

	var gated struct {
		Rules []Rule          `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &gated); err != nil {
		return fmt.Errorf("argument is neither a string nor a rule object: %w", err)
	}

	var values []string
	switch {
	case isNull(gated.Value):
		// a gated entry without a value contributes nothing
	case json.Unmarshal(gated.Value, &plain) == nil:
		values = []string{plain}
	default:
		if err := json.Unmarshal(gated.Value, &values); err != nil {
			return fmt.Errorf("argument value is neither a string nor a list: %w", err)
		}
	}

	*a = Argument{Values: values, Rules: gated.Rules}
	return nil
}

// MarshalJSON keeps plain arguments as strings.
func (a Argument) MarshalJSON() ([]byte, error) {
	if len(a.Rules) == 0 && len(a.Values) == 1 {
		return json.Marshal(a.Values[0])
	}
	return json.Marshal(struct {
		Rules []Rule   `json:"rules,omitempty"`
		Value []string `json:"value"`
	}{a.Rules, a.Values})
}

// Arguments is the modern (1.13+) argument layout.
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Meta is the content of versions/<id>/<id>.json.
type Meta struct {
	ID                 string              `json:"id"`
	InheritsFrom       string              `json:"inheritsFrom,omitempty"`
	Type               string              `json:"type,omitempty"`
	MainClass          string              `json:"mainClass,omitempty"`
	Jar                string              `json:"jar,omitempty"`
	Assets             string              `json:"assets,omitempty"`
	AssetIndex         *AssetIndex         `json:"assetIndex,omitempty"`
	Downloads          map[string]Download `json:"downloads,omitempty"`
	Libraries          []Library           `json:"libraries,omitempty"`
	Arguments          *Arguments          `json:"arguments,omitempty"`
	MinecraftArguments string              `json:"minecraftArguments,omitempty"`
	JavaVersion        *JavaVersion        `json:"javaVersion,omitempty"`
	ReleaseTime        Timestamp           `json:"releaseTime"`
	Time               Timestamp           `json:"time"`
}

// AssetsID returns the asset index name, preferring the explicit index entry.
func (m *Meta) AssetsID() string {
	if m.AssetIndex != nil && m.AssetIndex.ID != "" {
		return m.AssetIndex.ID
	}
	if m.Assets != "" {
		return m.Assets
	}
	return "legacy"
}

// merge layers child over parent: scalar fields set on the child win,
// child libraries come first and argument lists are concatenated.
func merge(parent, child *Meta) *Meta {
	out := *parent
	out.ID = child.ID
	out.InheritsFrom = ""

	if child.Type != "" {
		out.Type = child.Type
	}
	if child.MainClass != "" {
		out.MainClass = child.MainClass
	}
	if child.Jar != "" {
		out.Jar = child.Jar
	} else if out.Jar == "" {
		out.Jar = parent.ID
	}
	if child.Assets != "" {
		out.Assets = child.Assets
	}
	if child.AssetIndex != nil {
		out.AssetIndex = child.AssetIndex
	}
	if child.MinecraftArguments != "" {
		out.MinecraftArguments = child.MinecraftArguments
	}
	if child.JavaVersion != nil {
		out.JavaVersion = child.JavaVersion
	}
	if !child.ReleaseTime.Time().IsZero() {
		out.ReleaseTime = child.ReleaseTime
	}
	if !child.Time.Time().IsZero() {
		out.Time = child.Time
	}

	if len(child.Downloads) > 0 {
		out.Downloads = make(map[string]Download, len(parent.Downloads)+len(child.Downloads))
		for k, v := range parent.Downloads {
			out.Downloads[k] = v
		}
		for k, v := range child.Downloads {
			out.Downloads[k] = v
		}
	}

	out.Libraries = make([]Library, 0, len(child.Libraries)+len(parent.Libraries))
	out.Libraries = append(out.Libraries, child.Libraries...)
	out.Libraries = append(out.Libraries, parent.Libraries...)

	if child.Arguments != nil {
		args := &Arguments{}
		if parent.Arguments != nil {
			args.Game = append(args.Game, parent.Arguments.Game...)
			args.JVM = append(args.JVM, parent.Arguments.JVM...)
		}
		args.Game = append(args.Game, child.Arguments.Game...)
		args.JVM = append(args.JVM, child.Arguments.JVM...)
		out.Arguments = args
	}

	return &out
}
