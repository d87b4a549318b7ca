package gsheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"github.com/spf13/afero"
)

// State is the lifecycle state of an Executor.
type State int

const (
	Idle State = iota
	Downloading
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Downloading:
		return "downloading"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrBusy is returned when Run is called while a download is in progress.
var ErrBusy = errors.New("import already in progress")

// Importer registers a written artifact with the project's asset database.
type Importer interface {
	Import(path string) (string, error)
}

// Job describes one import. It is a snapshot; later profile edits do not
// affect a running job.
type Job struct {
	DocID     string
	AssetPath string
	Prefix    string
	Sheets    []string
	Mode      Mode
}

// Report summarizes a finished run.
type Report struct {
	State     State
	Attempted int
	Written   int
	Failed    int
	// Artifacts lists the written paths in download order.
	Artifacts []string
}

// Executor downloads sheets one at a time and writes each as a text
// artifact. At most one run is active per Executor.
type Executor struct {
	fs       afero.Fs
	fetcher  Fetcher
	importer Importer
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewExecutor returns an Executor writing to fsys. importer may be nil, in
// which case artifacts are written but not registered.
func NewExecutor(fsys afero.Fs, fetcher Fetcher, importer Importer, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{fs: fsys, fetcher: fetcher, importer: importer, logger: logger}
}

// State returns the executor's current state.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Executor) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Downloading {
		return false
	}
	e.state = Downloading
	return true
}

func (e *Executor) finish(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

type target struct {
	url, path string
}

func (j Job) targets() []target {
	switch j.Mode {
	case ModeMain:
		return []target{{MainSheetURL(j.DocID), MainArtifact(j.AssetPath, j.Prefix, j.DocID)}}
	case ModeBatch:
		out := make([]target, 0, len(j.Sheets))
		for _, s := range j.Sheets {
			out = append(out, target{SheetURL(j.DocID, s), SheetArtifact(j.AssetPath, j.Prefix, s)})
		}
		return out
	}
	return nil
}

// Run executes job. Sheets are fetched in order; a failed fetch or write is
// logged and skipped. Cancelling ctx stops the run before the next sheet;
// artifacts already written are kept. The only error is ErrBusy.
func (e *Executor) Run(ctx context.Context, job Job) (Report, error) {
	if !e.begin() {
		return Report{State: Downloading}, ErrBusy
	}

	rep := Report{State: Completed}
	for _, t := range job.targets() {
		if ctx.Err() != nil {
			rep.State = Cancelled
			break
		}
		rep.Attempted++
		text, err := e.fetcher.FetchText(ctx, t.url)
		if err != nil {
			if ctx.Err() != nil {
				rep.State = Cancelled
				break
			}
			rep.Failed++
			e.logger.Error("failed to download sheet", "url", t.url, "error", err)
			continue
		}
		if err := e.write(t.path, text); err != nil {
			rep.Failed++
			e.logger.Error("failed to write sheet", "path", t.path, "error", err)
			continue
		}
		rep.Written++
		rep.Artifacts = append(rep.Artifacts, t.path)
		e.logger.Info("downloaded sheet", "url", t.url, "path", t.path)
	}

	e.finish(rep.State)
	return rep, nil
}

func (e *Executor) write(p, text string) error {
	if err := e.fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, p, []byte(text), 0o644); err != nil {
		return err
	}
	if e.importer != nil {
		if _, err := e.importer.Import(p); err != nil {
			e.logger.Debug("artifact not registered", "path", p, "error", err)
		}
	}
	return nil
}
