// Package session keeps live games in memory for the HTTP handlers.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Session owns one game. The game itself is single threaded, so every access
// goes through the session lock.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.Mutex
	game    *mines.Game
	endedAt time.Time
	touched time.Time
	now     func() time.Time
}

// Snapshot is the JSON form of a session.
type Snapshot struct {
	GameSessionID string `json:"game_session_id"`
	StartedAt     int64  `json:"started_at"`
	EndedAt       *int64 `json:"ended_at,omitempty"`
	mines.View
}

// Do runs fn with exclusive access to the game.
func (s *Session) Do(fn func(g *mines.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.do(fn)
}

func (s *Session) do(fn func(g *mines.Game) error) error {
	err := fn(s.game)
	s.touched = s.now()
	if s.game.Status().Over() && s.endedAt.IsZero() {
		s.endedAt = s.touched
	}
	return err
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		GameSessionID: s.ID.String(),
		StartedAt:     s.StartedAt.UnixMilli(),
		View:          s.game.View(),
	}
	if !s.endedAt.IsZero() {
		e := s.endedAt.UnixMilli()
		snap.EndedAt = &e
	}
	return snap
}

// DoSnapshot is [Session.Do] followed by a snapshot taken under the same lock.
func (s *Session) DoSnapshot(fn func(g *mines.Game) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.do(fn)
	return s.snapshot(), err
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

func (s *Store) Create(g *mines.Game) *Session {
	now := s.now().UTC()
	session := &Session{
		ID:        uuid.New(),
		StartedAt: now,
		game:      g,
		touched:   now,
		now:       s.now,
	}
	if g.Status().Over() {
		session.endedAt = now
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

func (s *Store) Get(id string) (*Session, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[key]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions untouched for longer than ttl and returns how many
// were dropped.
func (s *Store) Sweep(ttl time.Duration) int {
	deadline := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(deadline) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval, ttl time.Duration, log *logrus.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.WithFields(logrus.Fields{
		"interval": interval.String(),
		"ttl":      ttl.String(),
	}).Info("session sweeper started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(ttl); n > 0 {
				log.WithFields(logrus.Fields{
					"swept": n,
					"live":  s.Len(),
				}).Info("idle sessions dropped")
			}
		}
	}
}
