package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dgallion1/pagewise/internal/bridge"
	"github.com/dgallion1/pagewise/internal/reader"
	"github.com/go-chi/chi/v5"
)

// maxMessageBytes bounds a surface message body.
const maxMessageBytes = 64 << 10

type createSessionRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Budget int    `json:"budget"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSONLimit(w, r, &req, s.cfg.MaxUploadBytes) {
		return
	}
	if req.Budget < 0 {
		jsonError(w, "budget must be positive", http.StatusBadRequest)
		return
	}
	session, err := s.sessions.Open(req.Title, req.Text, req.Budget)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := session.View()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// session resolves the {sessionID} URL parameter, answering 404 itself.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*reader.Session, bool) {
	session, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return session, true
}

// page parses the {page} URL parameter.
func page(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		jsonError(w, "page must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// writeView answers with the session's current view.
func writeView(w http.ResponseWriter, session *reader.Session) {
	view, err := session.View()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		writeView(w, session)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	items, err := session.Menu()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page_count": session.PageCount(),
		"pages":      items,
	})
}

func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := page(w, r)
	if !ok {
		return
	}
	doc, err := session.Mount(index)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	io.WriteString(w, doc)
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := page(w, r)
	if !ok {
		return
	}
	if err := session.Unmount(index); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoaded(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := page(w, r)
	if !ok {
		return
	}
	if err := session.Loaded(index); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMessage takes the raw bridge payload as the request body. Malformed
// payloads are logged by the session and still acknowledged.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := page(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageBytes))
	if err != nil {
		jsonError(w, "message too large", http.StatusRequestEntityTooLarge)
		return
	}
	err = session.Receive(index, string(body))
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	case errors.Is(err, bridge.ErrProtocol):
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
	default:
		writeError(w, err)
	}
}

func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	index, ok := page(w, r)
	if !ok {
		return
	}
	scripts, err := session.Commands(index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scripts": scripts})
}
