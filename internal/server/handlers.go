package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, cookie := s.session(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	sess.mu.Lock()
	if q := r.URL.Query(); q.Has("q") {
		s.apply(sess, event{Type: eventInput, Value: q.Get("q")})
	}
	var page bytes.Buffer
	err := sess.surface.Render(&page)
	sess.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.Bytes())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	unit, err := strconv.Atoi(chi.URLParam(r, "unit"))
	if err != nil {
		http.Error(w, "invalid unit", http.StatusBadRequest)
		return
	}
	s.handleEvent(w, r, event{Type: eventToggle, Unit: unit})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	unit, err := strconv.Atoi(chi.URLParam(r, "unit"))
	if err != nil {
		http.Error(w, "invalid unit", http.StatusBadRequest)
		return
	}
	situation, err := strconv.Atoi(chi.URLParam(r, "situation"))
	if err != nil {
		http.Error(w, "invalid situation", http.StatusBadRequest)
		return
	}
	s.handleEvent(w, r, event{Type: eventSelect, Unit: unit, Situation: situation})
}

// handleEvent applies a form-posted event and redirects back to the page.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request, ev event) {
	sess, cookie := s.session(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	sess.mu.Lock()
	err := s.apply(sess, ev)
	sess.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apply dispatches ev on the session surface. The caller holds sess.mu.
func (s *Server) apply(sess *session, ev event) error {
	if s.cfg.Verbose {
		log.Printf("server: session %s: %s unit=%d situation=%d", sess.id, ev.Type, ev.Unit, ev.Situation)
	}
	return dispatch(sess.surface, ev)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, cookie := s.session(r)
	var header http.Header
	if cookie != nil {
		header = http.Header{"Set-Cookie": {cookie.String()}}
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var ev event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sendJSON(conn, update{Type: "error", Content: "invalid message format"})
			continue
		}

		sess.mu.Lock()
		err = s.apply(sess, ev)
		var resp update
		if err == nil && ev.Type != eventScroll {
			resp = snapshot(sess.surface, ev)
		}
		sess.mu.Unlock()

		switch {
		case err != nil:
			sendJSON(conn, update{Type: "error", Content: err.Error()})
		case ev.Type == eventScroll:
			// Nothing visible changed.
		default:
			sendJSON(conn, resp)
		}
	}
}

func sendJSON(conn *websocket.Conn, v any) {
	if err := conn.WriteJSON(v); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
