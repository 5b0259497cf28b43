package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"launchlist/internal/config"
	"launchlist/internal/domain/launch"
	"launchlist/internal/provider"
	"launchlist/internal/services/feed"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrSessionNotFound is returned for an unknown or already closed session.
var ErrSessionNotFound = errors.New("session not found")

// maxNotices bounds the undelivered notices kept per session.
const maxNotices = 16

// Session is one mounted launch list: a feed controller plus the notices
// it produced that nobody has read yet.
type Session struct {
	ID       string
	OpenedAt time.Time

	feed     *feed.Controller[launch.Launch]
	lastUsed atomic.Int64
	revision atomic.Uint64

	mu      sync.Mutex
	notices []feed.Notice
}

// Feed returns the session's list controller.
func (s *Session) Feed() *feed.Controller[launch.Launch] { return s.feed }

// LastUsed is the last time the session was looked up.
func (s *Session) LastUsed() time.Time { return time.Unix(0, s.lastUsed.Load()) }

// Revision counts state changes; clients can poll it to skip redraws.
func (s *Session) Revision() uint64 { return s.revision.Load() }

// DrainNotices returns the pending notices and forgets them.
func (s *Session) DrainNotices() []feed.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) touch(now time.Time) { s.lastUsed.Store(now.UnixNano()) }

// StateChanged and Notify make the session the controller's observer.
func (s *Session) StateChanged(feed.State[launch.Launch]) { s.revision.Add(1) }

func (s *Session) Notify(n feed.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == maxNotices {
		s.notices = s.notices[1:]
	}
	s.notices = append(s.notices, n)
	log.Warn().Str("session_id", s.ID).Str("op", n.Op).Msg(n.Message)
}

// Registry owns the open sessions.
type Registry struct {
	src provider.LaunchSource
	cfg config.FeedCfg
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions list launches from src.
func NewRegistry(src provider.LaunchSource, cfg config.FeedCfg) *Registry {
	return &Registry{
		src:      src,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session and starts its initial load.
func (r *Registry) Open() *Session {
	now := r.now()
	s := &Session{ID: uuid.NewString(), OpenedAt: now}
	s.touch(now)
	s.feed = feed.New[launch.Launch](r.src, feed.Options[launch.Launch]{
		Name:           "launches:" + s.ID,
		PageSize:       r.cfg.PageSize,
		LoadMoreDelay:  r.cfg.LoadMoreDelay,
		SearchDebounce: r.cfg.SearchDebounce,
		Observer:       s,
	})

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	s.feed.LoadInitial()
	log.Info().Str("session_id", s.ID).Int("open_sessions", n).Msg("session opened")
	return s
}

// Get returns session id and marks it used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(r.now())
	return s, nil
}

// Close discards session id and stops its controller.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.feed.Close()
	log.Info().Str("session_id", id).Msg("session closed")
	return nil
}

// CloseIdle closes every session not used within ttl and returns how many
// were closed.
func (r *Registry) CloseIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	var stale []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastUsed().Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.feed.Close()
		log.Info().Str("session_id", s.ID).Time("last_used", s.LastUsed()).Msg("idle session closed")
	}
	return len(stale)
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.feed.Close()
	}
	log.Info().Int("count", len(all)).Msg("all sessions closed")
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
