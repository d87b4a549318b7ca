package gsheets_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fierclash/profilekit/internal/gsheets"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned responses keyed by URL.
type fakeFetcher struct {
	mu    sync.Mutex
	texts map[string]string
	calls []string

	// onFetch runs before each response.
	onFetch func(ctx context.Context, url string) error
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.onFetch != nil {
		if err := f.onFetch(ctx, url); err != nil {
			return "", err
		}
	}
	text, ok := f.texts[url]
	if !ok {
		return "", errors.New("503 service unavailable")
	}
	return text, nil
}

type recordingImporter struct {
	paths []string
}

func (r *recordingImporter) Import(p string) (string, error) {
	r.paths = append(r.paths, p)
	return "guid-" + p, nil
}

func batchJob(sheets ...string) gsheets.Job {
	return gsheets.Job{DocID: "DOC", AssetPath: "Assets/Data", Prefix: "loc_", Sheets: sheets, Mode: gsheets.ModeBatch}
}

func TestRunBatchSkipsFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	fsys := afero.NewMemMapFs()
	fetcher := &fakeFetcher{texts: map[string]string{
		gsheets.SheetURL("DOC", "Intro"): "intro,csv",
	}}
	imp := &recordingImporter{}
	ex := gsheets.NewExecutor(fsys, fetcher, imp, logger)
	assert.Equal(t, gsheets.Idle, ex.State())

	rep, err := ex.Run(context.Background(), batchJob("Intro", "Combat"))
	require.NoError(t, err)
	assert.Equal(t, gsheets.Completed, rep.State)
	assert.Equal(t, 2, rep.Attempted)
	assert.Equal(t, 1, rep.Written)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, []string{"Assets/Data/loc_Intro.txt"}, rep.Artifacts)
	assert.Equal(t, gsheets.Completed, ex.State())

	data, err := afero.ReadFile(fsys, "Assets/Data/loc_Intro.txt")
	require.NoError(t, err)
	assert.Equal(t, "intro,csv", string(data))
	ok, _ := afero.Exists(fsys, "Assets/Data/loc_Combat.txt")
	assert.False(t, ok)

	assert.Equal(t, []string{"Assets/Data/loc_Intro.txt"}, imp.paths)
	assert.Contains(t, logs.String(), "failed to download sheet")
	assert.Contains(t, logs.String(), "Combat")
}

func TestRunMain(t *testing.T) {
	fsys := afero.NewMemMapFs()
	fetcher := &fakeFetcher{texts: map[string]string{gsheets.MainSheetURL("DOC"): "a,b"}}
	ex := gsheets.NewExecutor(fsys, fetcher, nil, nil)

	job := batchJob("ignored")
	job.Mode = gsheets.ModeMain
	rep, err := ex.Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, gsheets.Report{State: gsheets.Completed, Attempted: 1, Written: 1, Artifacts: []string{"Assets/Data/loc_DOC-Main.txt"}}, rep)
	assert.Equal(t, []string{gsheets.MainSheetURL("DOC")}, fetcher.calls)

	t.Run("failure skips the artifact", func(t *testing.T) {
		ex := gsheets.NewExecutor(fsys, &fakeFetcher{}, nil, nil)
		job.DocID = "OTHER"
		rep, err := ex.Run(context.Background(), job)
		require.NoError(t, err)
		assert.Equal(t, gsheets.Completed, rep.State)
		assert.Equal(t, 1, rep.Failed)
		ok, _ := afero.Exists(fsys, "Assets/Data/loc_OTHER-Main.txt")
		assert.False(t, ok)
	})
}

func TestRunNone(t *testing.T) {
	fetcher := &fakeFetcher{}
	ex := gsheets.NewExecutor(afero.NewMemMapFs(), fetcher, nil, nil)
	job := batchJob("Intro")
	job.Mode = gsheets.ModeNone

	rep, err := ex.Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, gsheets.Completed, rep.State)
	assert.Zero(t, rep.Attempted)
	assert.Empty(t, fetcher.calls)
}

func TestRunCancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{texts: map[string]string{
		gsheets.SheetURL("DOC", "A"): "a",
		gsheets.SheetURL("DOC", "B"): "b",
		gsheets.SheetURL("DOC", "C"): "c",
	}}
	fetcher.onFetch = func(_ context.Context, url string) error {
		if url == gsheets.SheetURL("DOC", "B") {
			cancel()
		}
		return nil
	}
	ex := gsheets.NewExecutor(fsys, fetcher, nil, nil)

	rep, err := ex.Run(ctx, batchJob("A", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, gsheets.Cancelled, rep.State)
	assert.Equal(t, gsheets.Cancelled, ex.State())
	assert.Equal(t, 2, rep.Written, "the in-flight sheet completes")
	assert.Len(t, fetcher.calls, 2)

	ok, _ := afero.Exists(fsys, "Assets/Data/loc_A.txt")
	assert.True(t, ok, "written artifacts are kept")
	ok, _ = afero.Exists(fsys, "Assets/Data/loc_C.txt")
	assert.False(t, ok)

	t.Run("cancelled during fetch", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		f := &fakeFetcher{onFetch: func(ctx context.Context, _ string) error {
			cancel()
			return ctx.Err()
		}}
		rep, err := gsheets.NewExecutor(fsys, f, nil, nil).Run(ctx, batchJob("A", "B"))
		require.NoError(t, err)
		assert.Equal(t, gsheets.Cancelled, rep.State)
		assert.Zero(t, rep.Failed)
	})

	t.Run("cancelled before start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := &fakeFetcher{}
		rep, err := gsheets.NewExecutor(fsys, f, nil, nil).Run(ctx, batchJob("A"))
		require.NoError(t, err)
		assert.Equal(t, gsheets.Cancelled, rep.State)
		assert.Empty(t, f.calls)
	})
}

func TestRunBusy(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetcher := &fakeFetcher{
		texts: map[string]string{gsheets.SheetURL("DOC", "A"): "a"},
		onFetch: func(context.Context, string) error {
			close(started)
			<-release
			return nil
		},
	}
	ex := gsheets.NewExecutor(afero.NewMemMapFs(), fetcher, nil, nil)

	done := make(chan gsheets.Report)
	go func() {
		rep, _ := ex.Run(context.Background(), batchJob("A"))
		done <- rep
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not start")
	}
	assert.Equal(t, gsheets.Downloading, ex.State())
	_, err := ex.Run(context.Background(), batchJob("A"))
	assert.ErrorIs(t, err, gsheets.ErrBusy)

	close(release)
	rep := <-done
	assert.Equal(t, gsheets.Completed, rep.State)
	assert.Equal(t, 1, rep.Written)
}
