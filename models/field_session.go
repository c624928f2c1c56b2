package models

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
)

// FieldSession is one open field widget: an editor looking at one entry.
type FieldSession struct {
	ID         string
	EntryID    string
	Controller *FieldController
	viewport   *HeightRecorder
	lastSeen   atomic.Int64 // unix nanos
}

// Height is the last height the controller asked the host for.
func (s *FieldSession) Height() int {
	return s.viewport.Height()
}

func (s *FieldSession) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *FieldSession) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// HeightRecorder is a Viewport that remembers the last requested height so
// the web layer can hand it to the host frame.
type HeightRecorder struct {
	height atomic.Int64
}

// UpdateHeight implements Viewport.
func (h *HeightRecorder) UpdateHeight(px int) {
	h.height.Store(int64(px))
}

// Height returns the last recorded height.
func (h *HeightRecorder) Height() int {
	return int(h.height.Load())
}

// StoreFactory returns the host field store for an entry.
type StoreFactory func(entryID string) FieldStore

// EntryFieldStore is the StoreFactory backed by the DuckDB field store.
func EntryFieldStore(entryID string) FieldStore {
	return EntryField{EntryID: entryID}
}

// SessionRegistry keeps live field sessions keyed by a random id.
// Sessions idle longer than the TTL are dropped on the next access.
type SessionRegistry struct {
	fetcher  SuggestionFetcher
	storeFor StoreFactory
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*FieldSession
}

// NewSessionRegistry builds an empty registry.
func NewSessionRegistry(fetcher SuggestionFetcher, storeFor StoreFactory, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		fetcher:  fetcher,
		storeFor: storeFor,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*FieldSession),
	}
}

// Open creates and mounts a session for entryID.
func (r *SessionRegistry) Open(entryID string, opts ...FieldControllerOption) *FieldSession {
	viewport := &HeightRecorder{}
	session := &FieldSession{
		ID:         uuid.NewString(),
		EntryID:    entryID,
		Controller: NewFieldController(r.fetcher, r.storeFor(entryID), viewport, opts...),
		viewport:   viewport,
	}
	session.Controller.Mount()

	now := r.now()
	session.touch(now)

	r.mu.Lock()
	r.sweepLocked(now)
	r.sessions[session.ID] = session
	r.mu.Unlock()

	logger.Info("Field session opened", "session_id", session.ID, "entry_id", entryID)
	return session
}

// Get returns a live session and marks it as used.
func (r *SessionRegistry) Get(id string) (*FieldSession, bool) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked(now)
	session, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	session.touch(now)
	return session, true
}

// Close forgets a session.
func (r *SessionRegistry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports how many sessions are live.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) sweepLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	expired := 0
	for id, session := range r.sessions {
		if session.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		logger.Debug("Expired idle field sessions", "count", strconv.Itoa(expired))
	}
}
