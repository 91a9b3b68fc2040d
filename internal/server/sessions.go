package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/lernkatalog/internal/catalog"
)

const (
	sessionCookie = "lernkatalog_session"
	// sessionIdle is how long an untouched session is kept.
	sessionIdle = 2 * time.Hour
)

// session is one open catalog page. mu serializes its UI events so each
// handler runs to completion before the next one starts.
type session struct {
	mu       sync.Mutex
	id       string
	surface  *catalog.Surface
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

func (st *sessionStore) lookup(id string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if ok {
		sess.lastSeen = time.Now()
	}
	return sess
}

// add registers sess and drops sessions idle for longer than sessionIdle.
func (st *sessionStore) add(sess *session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, old := range st.sessions {
		if now.Sub(old.lastSeen) > sessionIdle {
			delete(st.sessions, id)
		}
	}
	sess.lastSeen = now
	st.sessions[sess.id] = sess
}

func (st *sessionStore) count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// session returns the caller's session, creating and bootstrapping a new
// one when the cookie is missing or unknown. A non-nil cookie must be sent
// back to the client.
func (s *Server) session(r *http.Request) (*session, *http.Cookie) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess := s.sessions.lookup(c.Value); sess != nil {
			return sess, nil
		}
	}

	sess := &session{
		id:      uuid.NewString(),
		surface: catalog.NewSurface(s.cfg.Title, nil),
	}
	sess.surface.Nav.Base = "/"
	if s.cfg.Welcome != "" {
		sess.surface.Detail.Replace(s.cfg.Welcome)
	}

	// Hold the page while it loads so concurrent requests wait for it.
	sess.mu.Lock()
	s.sessions.add(sess)
	ctx := context.WithoutCancel(r.Context())
	if err := catalog.Bootstrap(ctx, s.source, sess.surface); err != nil {
		log.Printf("server: loading manifest for session %s: %v", sess.id, err)
	}
	sess.mu.Unlock()

	return sess, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
