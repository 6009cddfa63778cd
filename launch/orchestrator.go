package launch

import (
	"TUI-MC-Launcher/auth"
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Request is everything one launch attempt needs from the interface.
type Request struct {
	VersionsDir string
	VersionID   string
	Auth        auth.Method
	JavaPath    string
	MaxMemoryMB int
	Options     Options
}

// Observer is told about every state change of an attempt. It runs on the
// goroutine executing the attempt and must not block.
type Observer func(from, to State, err error)

// Orchestrator runs the launch pipeline. Steps execute strictly in order;
// the first failure ends the attempt with no retry and no rollback.
type Orchestrator struct {
	fs       afero.Fs
	observer Observer
	busy     atomic.Bool
}

// NewOrchestrator returns an orchestrator reading the version store from fs.
// observer may be nil.
func NewOrchestrator(fs afero.Fs, observer Observer) *Orchestrator {
	return &Orchestrator{fs: fs, observer: observer}
}

// Busy reports whether an attempt is in flight.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

type attempt struct {
	o     *Orchestrator
	state State
}

func (a *attempt) moveTo(to State, err error) {
	from := a.state
	a.state = to
	log.Debug().Stringer("from", from).Stringer("to", to).Err(err).Msg("launch state")
	if a.o.observer != nil {
		a.o.observer(from, to, err)
	}
}

func (a *attempt) fail(stage State, err error) error {
	wrapped := &StageError{Stage: stage, Err: err}
	a.moveTo(StateFailed, wrapped)
	log.Error().Err(err).Stringer("stage", stage).Msg("launch failed")
	return wrapped
}

// Run executes one attempt: resolve, configure, prepare, spawn. At most one
// attempt runs at a time per orchestrator; a concurrent call gets ErrBusy.
// Cancelling ctx stops the attempt between steps.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Process, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer o.busy.Store(false)

	a := &attempt{o: o, state: StateIdle}
	log.Info().
		Str("version", req.VersionID).
		Str("versions_dir", req.VersionsDir).
		Msg("launch requested")

	a.moveTo(StateResolving, nil)
	info, err := ResolveVersion(ctx, o.fs, req.VersionsDir, req.VersionID)
	if err != nil {
		return nil, a.fail(StateResolving, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, a.fail(StateConfigured, err)
	}
	cfg, err := BuildConfig(req.Auth, info, req.JavaPath, req.MaxMemoryMB, req.Options)
	if err != nil {
		return nil, a.fail(StateConfigured, err)
	}
	a.moveTo(StateConfigured, nil)

	if err := ctx.Err(); err != nil {
		return nil, a.fail(StateSessionReady, err)
	}
	session, err := NewSession(ctx, o.fs, cfg)
	if err != nil {
		return nil, a.fail(StateSessionReady, err)
	}
	a.moveTo(StateSessionReady, nil)

	if err := ctx.Err(); err != nil {
		return nil, a.fail(StateLaunched, err)
	}
	proc, err := session.Launch(ctx)
	if err != nil {
		return nil, a.fail(StateLaunched, err)
	}
	a.moveTo(StateLaunched, nil)

	a.moveTo(StateDone, nil)
	return proc, nil
}
