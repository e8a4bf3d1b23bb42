package api

import (
	"net/http"

	"github.com/dgallion1/pagewise/internal/toolbar"
)

type swipeRequest struct {
	Phase   string  `json:"phase"`
	OffsetX float64 `json:"offset_x"`
}

func (s *Server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req swipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	switch req.Phase {
	case "begin":
		err = session.SwipeBegin()
	case "scroll":
		err = session.SwipeScroll(req.OffsetX)
	case "settle":
		err = session.SwipeSettle(req.OffsetX)
	default:
		jsonError(w, "phase must be begin, scroll or settle", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type sliderRequest struct {
	Phase string  `json:"phase"`
	Value float64 `json:"value"`
}

func (s *Server) handleSlider(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req sliderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	switch req.Phase {
	case "move":
		err = session.SliderMove(req.Value)
	case "release":
		_, err = session.SliderRelease(req.Value)
	default:
		jsonError(w, "phase must be move or release", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type menuRequest struct {
	Action string `json:"action"`
	Index  *int   `json:"index"`
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req menuRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	switch req.Action {
	case "toggle":
		_, err = session.ToggleMenu()
	case "close":
		err = session.CloseMenu()
	case "jump":
		if req.Index == nil {
			jsonError(w, "index is required for jump", http.StatusBadRequest)
			return
		}
		err = session.MenuJump(*req.Index)
	default:
		jsonError(w, "action must be toggle, close or jump", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type resizeRequest struct {
	PageWidth float64 `json:"page_width"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req resizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := session.Resize(req.PageWidth); err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type themeRequest struct {
	Dark   *bool `json:"dark"`
	Toggle bool  `json:"toggle"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req themeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var err error
	switch {
	case req.Toggle:
		_, err = session.ToggleTheme()
	case req.Dark != nil:
		err = session.SetTheme(*req.Dark)
	default:
		jsonError(w, "dark or toggle is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type toolbarRequest struct {
	Action toolbar.Action `json:"action"`
}

func (s *Server) handleToolbar(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req toolbarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := session.Toolbar(req.Action); err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}

type notesRequest struct {
	Body string `json:"body"`
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	var req notesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	notes, err := session.SetNoteBody(req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCloseNotes(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := session.CloseNotes(); err != nil {
		writeError(w, err)
		return
	}
	writeView(w, session)
}
