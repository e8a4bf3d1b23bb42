package reader

import (
	"unicode/utf8"

	"github.com/dgallion1/pagewise/internal/bridge"
	"github.com/dgallion1/pagewise/internal/surface"
	"github.com/dgallion1/pagewise/internal/toolbar"
)

// Mount registers a surface for page and returns its HTML document.
func (s *Session) Mount(page int) (string, error) {
	var doc string
	err := s.do(func() error {
		if err := s.checkPage(page); err != nil {
			return err
		}
		h, err := s.surfaces.Mount(s.pages[page])
		if err != nil {
			return err
		}
		doc, err = s.surfaces.Document(h)
		return err
	})
	return doc, err
}

// Loaded reports that the surface for page finished loading.
func (s *Session) Loaded(page int) error {
	return s.do(func() error {
		h, ok := s.surfaces.Handle(page)
		if !ok {
			return surface.ErrUnknownSurface
		}
		return s.surfaces.Loaded(h)
	})
}

// Unmount releases the surface for page.
func (s *Session) Unmount(page int) error {
	return s.do(func() error {
		if !s.surfaces.Unmount(page) {
			return surface.ErrUnknownSurface
		}
		return nil
	})
}

// Commands drains the scripts waiting for the surface of page.
func (s *Session) Commands(page int) ([]string, error) {
	var scripts []string
	err := s.do(func() error {
		h, ok := s.surfaces.Handle(page)
		if !ok {
			return surface.ErrUnknownSurface
		}
		scripts = s.outbox.Drain(h)
		return nil
	})
	return scripts, err
}

// Receive handles a raw message posted by the surface of page. Malformed
// messages are logged and leave the session unchanged; the error is returned
// so callers can classify it.
func (s *Session) Receive(page int, raw string) error {
	return s.do(func() error {
		if err := s.checkPage(page); err != nil {
			return err
		}
		ev, err := bridge.DecodeEvent(raw)
		if err != nil {
			s.log.Warn("dropping malformed surface message", "page", page, "error", err)
			return err
		}
		s.toolbar.Select(page, ev)
		return nil
	})
}

func (s *Session) SwipeBegin() error {
	return s.do(func() error {
		s.position.SwipeBegin()
		return nil
	})
}

func (s *Session) SwipeScroll(offsetX float64) error {
	return s.do(func() error {
		s.position.SwipeScroll(offsetX)
		return nil
	})
}

// SwipeSettle reports a drag or momentum end at offsetX. The commit happens
// after the settle debounce.
func (s *Session) SwipeSettle(offsetX float64) error {
	return s.do(func() error {
		s.position.SwipeSettle(offsetX)
		return nil
	})
}

func (s *Session) SliderMove(value float64) error {
	return s.do(func() error {
		s.position.SliderMove(value)
		return nil
	})
}

// SliderRelease commits the slider value and returns the new page.
func (s *Session) SliderRelease(value float64) (int, error) {
	var index int
	err := s.do(func() error {
		index = s.position.SliderRelease(value)
		return nil
	})
	return index, err
}

// ToggleMenu shows or hides the page-list menu and reports its visibility.
func (s *Session) ToggleMenu() (bool, error) {
	var visible bool
	err := s.do(func() error {
		visible = s.position.ToggleMenu()
		return nil
	})
	return visible, err
}

func (s *Session) CloseMenu() error {
	return s.do(func() error {
		s.position.CloseMenu()
		return nil
	})
}

// MenuJump moves to page from the page-list menu.
func (s *Session) MenuJump(page int) error {
	return s.do(func() error {
		return s.position.MenuJump(page)
	})
}

// Resize updates the page width used to map scroll offsets to pages.
func (s *Session) Resize(pageWidth float64) error {
	return s.do(func() error {
		return s.position.Resize(pageWidth)
	})
}

// SetTheme applies the theme to every mounted surface.
func (s *Session) SetTheme(dark bool) error {
	return s.do(func() error {
		s.surfaces.SetTheme(surface.Theme{Dark: dark})
		return nil
	})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() (surface.Theme, error) {
	var t surface.Theme
	err := s.do(func() error {
		t = surface.Theme{Dark: !s.surfaces.Theme().Dark}
		s.surfaces.SetTheme(t)
		return nil
	})
	return t, err
}

// Toolbar performs a toolbar action on the current selection.
func (s *Session) Toolbar(a toolbar.Action) error {
	return s.do(func() error {
		return s.toolbar.Do(a)
	})
}

// SetNoteBody replaces the notes draft, truncated to MaxNoteLength
// characters.
func (s *Session) SetNoteBody(body string) (Notes, error) {
	var n Notes
	err := s.do(func() error {
		if !s.notes.state.Open {
			return ErrNotesClosed
		}
		if utf8.RuneCountInString(body) > MaxNoteLength {
			body = string([]rune(body)[:MaxNoteLength])
		}
		s.notes.state.Body = body
		n = s.notes.state
		return nil
	})
	return n, err
}

// CloseNotes discards the draft and returns the toolbar to idle.
func (s *Session) CloseNotes() error {
	return s.do(func() error {
		if !s.notes.state.Open {
			return nil
		}
		s.notes.state = Notes{}
		s.toolbar.NotesClosed()
		return nil
	})
}
