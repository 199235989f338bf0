package http

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/mapview"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// session is one interactive map view. Its mutex serializes events so the
// coordinator only ever handles one at a time.
type session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	viewport mapview.Viewport
	coord    *traffic.Coordinator
	frame    traffic.Frame
	renders  int
}

// Render implements traffic.Sink by keeping the latest frame.
func (s *session) Render(f traffic.Frame) {
	s.frame = f
	s.renders++
	s.UpdatedAt = time.Now().UTC()
}

type sessionView struct {
	SessionID string           `json:"session_id"`
	State     string           `json:"state"`
	Viewport  mapview.Viewport `json:"viewport"`
	Renders   int              `json:"renders"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Frame     traffic.Frame    `json:"frame"`
}

// view must be called with s.mu held.
func (s *session) view() sessionView {
	return sessionView{
		SessionID: s.ID,
		State:     s.coord.State().String(),
		Viewport:  s.viewport,
		Renders:   s.renders,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Frame:     s.frame,
	}
}

func newSession(ds traffic.Dataset, vp mapview.Viewport) (*session, error) {
	now := time.Now().UTC()
	s := &session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		viewport:  vp,
	}
	s.coord = traffic.NewCoordinator(s)
	if err := s.coord.DataReady(ds.Stations, ds.Trips, vp); err != nil {
		return nil, err
	}
	return s, nil
}

// sessionStore keeps sessions in memory; idle sessions expire after ttl.
type sessionStore struct {
	lru *expirable.LRU[string, *session]
}

func newSessionStore(size int, ttl time.Duration) *sessionStore {
	return &sessionStore{lru: expirable.NewLRU[string, *session](size, nil, ttl)}
}

func (st *sessionStore) Get(id string) (*session, bool) {
	return st.lru.Get(id)
}

// Touch re-adds s so its expiry restarts.
func (st *sessionStore) Touch(s *session) {
	st.lru.Add(s.ID, s)
}

func (st *sessionStore) Remove(id string) bool {
	return st.lru.Remove(id)
}

func (st *sessionStore) Len() int {
	return st.lru.Len()
}
