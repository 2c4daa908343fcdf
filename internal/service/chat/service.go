package chat

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evateli/globetalk/internal/model/chat"
)

var (
	ErrCountryRequired = errors.New("country is required")
	ErrSessionNotFound = errors.New("session not found")
)

// ReplyFunc produces the assistant reply for a user input given the
// history recorded before that input.
type ReplyFunc func(ctx context.Context, turns []chat.Turn) (string, error)

// Service holds conversation state in memory. All turn mutations for one
// session are serialized by a per-session lock so concurrent requests
// cannot interleave the transcript.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*state

	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type state struct {
	mu         sync.Mutex
	session    chat.Session
	turns      []chat.Turn
	lastActive time.Time
}

// NewService bootstraps the in-memory session store. Sessions idle longer
// than ttl are reaped every reapInterval; a non-positive ttl disables
// expiry.
func NewService(ttl, reapInterval time.Duration) *Service {
	s := &Service{
		sessions: make(map[string]*state),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	if ttl > 0 && reapInterval > 0 {
		go s.janitor(reapInterval)
	}

	return s
}

// Close stops the background reaper.
func (s *Service) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Start returns the session for the given identifier, creating it when
// absent. An empty identifier gets a server-generated UUID. Existing
// sessions are reused without clearing their history.
func (s *Service) Start(_ context.Context, sessionID, country, gender string) (chat.Session, bool, error) {
	if country == "" {
		return chat.Session{}, false, ErrCountryRequired
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[sessionID]; ok {
		st.mu.Lock()
		st.lastActive = time.Now()
		session := st.session
		st.mu.Unlock()
		return session, false, nil
	}

	session := chat.Session{
		ID:        sessionID,
		Country:   country,
		Gender:    gender,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions[sessionID] = &state{
		session:    session,
		turns:      make([]chat.Turn, 0, 16),
		lastActive: time.Now(),
	}

	return session, true, nil
}

// AppendTurns appends turns to a session's history.
func (s *Service) AppendTurns(_ context.Context, sessionID string, turns ...chat.Turn) error {
	st, ok := s.lookup(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	st.mu.Lock()
	st.turns = append(st.turns, turns...)
	st.lastActive = time.Now()
	st.mu.Unlock()
	return nil
}

// History returns an ordered copy of a session's transcript.
func (s *Service) History(_ context.Context, sessionID string) ([]chat.Turn, error) {
	st, ok := s.lookup(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	copied := make([]chat.Turn, len(st.turns))
	copy(copied, st.turns)
	return copied, nil
}

// Exists reports whether a session is present in the store.
func (s *Service) Exists(_ context.Context, sessionID string) bool {
	_, ok := s.lookup(sessionID)
	return ok
}

// Exchange runs one chat turn under the session lock: the user turn is
// appended, reply is invoked with the history as it stood before the
// input, and the assistant turn is appended on success. On failure the
// user turn stays in the transcript and the error is returned as-is.
func (s *Service) Exchange(ctx context.Context, sessionID, userInput string, reply ReplyFunc) (string, []chat.Turn, error) {
	st, ok := s.lookup(sessionID)
	if !ok {
		return "", nil, ErrSessionNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	before := make([]chat.Turn, len(st.turns))
	copy(before, st.turns)

	st.turns = append(st.turns, chat.UserTurn(userInput))
	st.lastActive = time.Now()

	answer, err := reply(ctx, before)
	if err != nil {
		return "", nil, err
	}

	st.turns = append(st.turns, chat.AssistantTurn(answer))
	st.lastActive = time.Now()

	copied := make([]chat.Turn, len(st.turns))
	copy(copied, st.turns)
	return answer, copied, nil
}

func (s *Service) lookup(sessionID string) (*state, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[sessionID]
	return st, ok
}

func (s *Service) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.reap(now)
		}
	}
}

// reap never blocks on a session lock: a session whose lock is held has an
// exchange in flight and is active by definition. The store lock is only
// held for the map scan and the final deletes, so requests on other
// sessions keep flowing while a slow generation runs.
func (s *Service) reap(now time.Time) {
	s.mu.RLock()
	candidates := make(map[string]*state, len(s.sessions))
	for id, st := range s.sessions {
		candidates[id] = st
	}
	s.mu.RUnlock()

	var expired []string
	for id, st := range candidates {
		if !st.mu.TryLock() {
			continue
		}
		idle := now.Sub(st.lastActive)
		st.mu.Unlock()

		if idle > s.ttl {
			expired = append(expired, id)
		}
	}

	if len(expired) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range expired {
		st, ok := s.sessions[id]
		if !ok {
			continue
		}
		// The session may have been touched between the scan and here.
		if !st.mu.TryLock() {
			continue
		}
		idle := now.Sub(st.lastActive)
		st.mu.Unlock()

		if idle > s.ttl {
			delete(s.sessions, id)
			log.Printf("[chat] reaped idle session=%s after %s", id, idle.Round(time.Second))
		}
	}
}
