package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"media-dupes/internal/database"
	"media-dupes/internal/downloads"
	"media-dupes/internal/models"
	"media-dupes/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	fail map[string]bool
}

func (r stubRunner) Run(ctx context.Context, url string, _ []string, onLine func(string)) error {
	onLine("[download] 100% of 1.00MiB")
	if r.fail[url] {
		return errors.New("exit status 1")
	}
	return ctx.Err()
}

type memQueueStore struct {
	mu   sync.Mutex
	urls []string
}

func (m *memQueueStore) Load(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...), nil
}

func (m *memQueueStore) Add(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	return true, nil
}

func (m *memQueueStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = nil
	return nil
}

func testSettings(t *testing.T) *models.Settings {
	t.Helper()
	return &models.Settings{
		AudioFormat:   "mp3",
		DownloadDir:   t.TempDir(),
		YoutubeDlPath: "youtube-dl",
	}
}

func newTestApp(t *testing.T, fail map[string]bool) (*App, *memQueueStore, *repo.HistoryStore) {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	qs := &memQueueStore{}
	hs := repo.GetHistoryStore(db.DB)
	d := downloads.NewDispatcher(stubRunner{fail: fail}, nil)
	return New(d, qs, hs), qs, hs
}

func TestEnqueuePersistsOnlyNewURLs(t *testing.T) {
	ctx := context.Background()
	a, qs, _ := newTestApp(t, nil)

	u, dup, err := a.Enqueue(ctx, "https://www.youtube.com/watch?v=a%252Fb")
	require.NoError(t, err)
	assert.False(t, dup)
	assert.Equal(t, "https://www.youtube.com/watch?v=a/b", u)

	_, dup, err = a.Enqueue(ctx, "https://www.youtube.com/watch?v=a/b")
	require.NoError(t, err)
	assert.True(t, dup)

	_, _, err = a.Enqueue(ctx, "not a url")
	assert.Error(t, err)

	stored, _ := qs.Load(ctx)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=a/b"}, stored)
}

func TestLoadQueue(t *testing.T) {
	ctx := context.Background()
	a, qs, _ := newTestApp(t, nil)
	qs.urls = []string{"https://soundcloud.com/x/y", "garbage", "https://vimeo.com/1"}

	require.NoError(t, a.LoadQueue(ctx))
	assert.Equal(t, []string{"https://soundcloud.com/x/y", "https://vimeo.com/1"}, a.Queue.Snapshot())
}

func TestRunBatchFullSuccessClearsQueueAndSavesHistory(t *testing.T) {
	ctx := context.Background()
	a, qs, hs := newTestApp(t, nil)

	for _, u := range []string{"https://www.youtube.com/watch?v=1", "https://music.youtube.com/watch?v=2"} {
		_, _, err := a.Enqueue(ctx, u)
		require.NoError(t, err)
	}

	r, ok, err := a.RunBatch(ctx, models.ModeAudio, testSettings(t))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.FullSuccess, r.Classification)
	assert.Equal(t, 0, a.Queue.Size())
	stored, _ := qs.Load(ctx)
	assert.Empty(t, stored)

	rec, found, err := hs.GetBatch(ctx, r.BatchID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, rec.Counters.Succeeded)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, "youtube.com", rec.Items[0].Site)

	counts, err := a.SiteCounts(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"youtube.com": 2}, counts)
}

func TestRunBatchTotalFailureKeepsQueue(t *testing.T) {
	ctx := context.Background()
	bad := "https://www.youtube.com/watch?v=gone"
	a, _, _ := newTestApp(t, map[string]bool{bad: true})

	_, _, err := a.Enqueue(ctx, bad)
	require.NoError(t, err)

	r, ok, err := a.RunBatch(ctx, models.ModeVideo, testSettings(t))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.TotalFailure, r.Classification)
	assert.Equal(t, []string{bad}, a.Queue.Snapshot())

	recs, err := a.History(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, models.TotalFailure, recs[0].Classification)
}

func TestRunBatchEmptyQueue(t *testing.T) {
	a, _, _ := newTestApp(t, nil)

	_, ok, err := a.RunBatch(context.Background(), models.ModeAudio, testSettings(t))
	require.NoError(t, err)
	assert.False(t, ok)

	recs, err := a.History(context.Background(), time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRunBatchInvalidMode(t *testing.T) {
	a, _, _ := newTestApp(t, nil)
	_, _, err := a.Enqueue(context.Background(), "https://vimeo.com/1")
	require.NoError(t, err)

	_, _, err = a.RunBatch(context.Background(), models.Mode("playlist"), testSettings(t))
	assert.Error(t, err)
	assert.Equal(t, 1, a.Queue.Size())
}
