package install

import (
	"sync/atomic"
)

// Stage is the step an install is working on.
type Stage int

const (
	// StageManifest indicates the version list is being fetched
	StageManifest Stage = iota
	// StageMetadata indicates version metadata is being downloaded
	StageMetadata
	// StageClient indicates the client jar is being downloaded
	StageClient
	// StageLibraries indicates libraries and natives are being downloaded
	StageLibraries
	// StageAssets indicates the asset index and objects are being downloaded
	StageAssets
	// StageRuntime indicates Java runtime files are being downloaded
	StageRuntime
	// StageDone indicates the install finished
	StageDone
)

// String returns the string representation of the Stage
func (s Stage) String() string {
	switch s {
	case StageManifest:
		return "Manifest"
	case StageMetadata:
		return "Metadata"
	case StageClient:
		return "Client"
	case StageLibraries:
		return "Libraries"
	case StageAssets:
		return "Assets"
	case StageRuntime:
		return "Java runtime"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress is a snapshot of one stage. Files counts finished downloads,
// including ones skipped because they were already present.
type Progress struct {
	Stage      Stage
	FilesDone  int
	FilesTotal int
	Bytes      int64 // bytes transferred so far in this stage
}

// Fraction returns completion in the range 0..1.
func (p Progress) Fraction() float64 {
	if p.FilesTotal <= 0 {
		return 0
	}
	return float64(p.FilesDone) / float64(p.FilesTotal)
}

// ProgressFunc receives progress updates. It may be called from several
// goroutines at once.
type ProgressFunc func(Progress)

type counter struct {
	stage Stage
	total int
	done  atomic.Int64
	bytes atomic.Int64
	cb    ProgressFunc
}

func (c *counter) add(n int64) {
	done := c.done.Add(1)
	bytes := c.bytes.Add(n)
	if c.cb != nil {
		c.cb(Progress{Stage: c.stage, FilesDone: int(done), FilesTotal: c.total, Bytes: bytes})
	}
}
