package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchlist/internal/config"
	"launchlist/internal/domain/launch"
	"launchlist/internal/domain/page"
	"launchlist/internal/provider"
	"launchlist/internal/services/feed"
)

type stubSource struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (s *stubSource) FetchPage(_ context.Context, req page.Request) (page.Result[launch.Launch], error) {
	s.calls.Add(1)
	if s.fail.Load() {
		return page.Result[launch.Launch]{}, provider.Failure("fetch launches page", 500, errors.New("boom"))
	}
	return page.Result[launch.Launch]{
		Items:      []launch.Launch{{ID: "l1", Name: "FalconSat"}, {ID: "l2", Name: "DemoSat"}},
		Page:       req.Page,
		TotalPages: 1,
	}, nil
}

var feedCfg = config.FeedCfg{PageSize: 10, LoadMoreDelay: time.Millisecond, SearchDebounce: time.Millisecond}

func newRegistry(t *testing.T, src *stubSource) *Registry {
	t.Helper()
	reg := NewRegistry(src, feedCfg)
	t.Cleanup(reg.CloseAll)
	return reg
}

func TestOpenRunsInitialLoad(t *testing.T) {
	src := &stubSource{}
	reg := newRegistry(t, src)

	s := reg.Open()
	require.NotEmpty(t, s.ID)

	require.Eventually(t, func() bool {
		return len(s.Feed().State().Items) == 2
	}, time.Second, 2*time.Millisecond)
	assert.EqualValues(t, 1, src.calls.Load())
	assert.Equal(t, 1, reg.Len())
	assert.NotZero(t, s.Revision())
}

func TestGetAndClose(t *testing.T) {
	reg := newRegistry(t, &stubSource{})
	s := reg.Open()

	got, err := reg.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, reg.Close(s.ID))
	select {
	case <-s.Feed().Done():
	default:
		t.Fatal("controller still running after Close")
	}

	_, err = reg.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, reg.Close(s.ID), ErrSessionNotFound)
}

func TestGetUnknownSession(t *testing.T) {
	reg := newRegistry(t, &stubSource{})
	_, err := reg.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNoticesAreDrainedOnce(t *testing.T) {
	src := &stubSource{}
	src.fail.Store(true)
	reg := newRegistry(t, src)

	s := reg.Open()
	var notices []feed.Notice
	require.Eventually(t, func() bool {
		notices = append(notices, s.DrainNotices()...)
		return len(notices) > 0
	}, time.Second, 2*time.Millisecond)

	require.Len(t, notices, 1)
	assert.Equal(t, feed.FetchFailedMessage, notices[0].Message)
	assert.Equal(t, "load_initial", notices[0].Op)
	assert.Empty(t, s.DrainNotices())
}

func TestNoticesAreBounded(t *testing.T) {
	s := &Session{ID: "x"}
	for i := 0; i < maxNotices+5; i++ {
		s.Notify(feed.Notice{Message: feed.FetchFailedMessage, Op: "load_more"})
	}
	assert.Len(t, s.DrainNotices(), maxNotices)
}

func TestCloseIdle(t *testing.T) {
	reg := newRegistry(t, &stubSource{})
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	stale := reg.Open()
	clock = clock.Add(20 * time.Minute)
	fresh := reg.Open()
	clock = clock.Add(15 * time.Minute)

	assert.Equal(t, 1, reg.CloseIdle(30*time.Minute))

	_, err := reg.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestReaperRun(t *testing.T) {
	reg := newRegistry(t, &stubSource{})
	s := reg.Open()
	reg.now = func() time.Time { return time.Now().Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		NewReaper(reg, config.SessionCfg{IdleTTL: time.Minute, ReapEvery: 5 * time.Millisecond}).Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 2*time.Millisecond)
	<-s.Feed().Done()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}
