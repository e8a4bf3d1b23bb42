// Package reader hosts one open document per Session: its pages, the mounted
// surfaces, the current page and the selection toolbar. All session state is
// owned by a single goroutine; callers and timers post work to it.
package reader

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dgallion1/pagewise/internal/paginate"
	"github.com/dgallion1/pagewise/internal/position"
	"github.com/dgallion1/pagewise/internal/surface"
	"github.com/dgallion1/pagewise/internal/toolbar"
)

var (
	ErrSessionClosed  = errors.New("reader: session closed")
	ErrNotFound       = errors.New("reader: session not found")
	ErrPageOutOfRange = errors.New("reader: page out of range")
	ErrNotesClosed    = errors.New("reader: notes not open")
)

// MaxNoteLength caps the notes draft, in characters.
const MaxNoteLength = 400

const eventBuffer = 64

// Options configure a session. Zero values take the defaults noted.
type Options struct {
	Budget         int     // paginate.DefaultBudget
	PageWidth      float64 // ScreenWidth
	ScreenWidth    float64 // 390
	SettleDebounce time.Duration
	SuppressWindow time.Duration
	OutboxLimit    int
	Theme          surface.Theme
	Clock          clockwork.Clock
}

func (o Options) withDefaults() Options {
	if o.Budget == 0 {
		o.Budget = paginate.DefaultBudget
	}
	if o.ScreenWidth <= 0 {
		o.ScreenWidth = 390
	}
	if o.PageWidth <= 0 {
		o.PageWidth = o.ScreenWidth
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// Scroll is the latest programmatic scroll the client should perform. Seq
// increases with every request so clients can skip ones already applied.
type Scroll struct {
	Seq      uint64  `json:"seq"`
	OffsetX  float64 `json:"offset_x"`
	Animated bool    `json:"animated"`
}

// Notes is the transient notes draft.
type Notes struct {
	Open    bool   `json:"open"`
	Prefill string `json:"prefill"`
	Body    string `json:"body"`
}

type notesDraft struct {
	state Notes
}

func (n *notesDraft) Open(prefill string) {
	n.state = Notes{Open: true, Prefill: prefill}
}

// View is a snapshot of everything the client renders.
type View struct {
	ID        string            `json:"session_id"`
	Title     string            `json:"title"`
	PageCount int               `json:"page_count"`
	Position  position.State    `json:"position"`
	Progress  position.Progress `json:"progress"`
	Theme     surface.Theme     `json:"theme"`
	Toolbar   toolbar.State     `json:"toolbar"`
	Notes     Notes             `json:"notes"`
	Scroll    *Scroll           `json:"scroll,omitempty"`
	Mounted   []int             `json:"mounted"`
}

// Session is one open document.
type Session struct {
	id    string
	title string
	pages []paginate.Page
	log   *slog.Logger

	outbox   *surface.Outbox
	surfaces *surface.Registry
	position *position.Synchronizer
	toolbar  *toolbar.Machine
	notes    notesDraft
	scroll   *Scroll

	events    chan func()
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

type scrollerFunc func(offsetX float64, animated bool)

func (f scrollerFunc) ScrollTo(offsetX float64, animated bool) { f(offsetX, animated) }

// Open paginates text as given and starts the session loop. The pages join
// back to text exactly. An empty document still gets one blank page so the
// reader stays interactive.
func Open(id, title, text string, opts Options, log *slog.Logger) (*Session, error) {
	opts = opts.withDefaults()
	pages, err := paginate.Paginate(text, opts.Budget)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		pages = []paginate.Page{{Index: 0}}
	}

	log = log.With("session_id", id)
	s := &Session{
		id:      id,
		title:   title,
		pages:   pages,
		log:     log,
		outbox:  surface.NewOutbox(opts.OutboxLimit),
		events:  make(chan func(), eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.surfaces = surface.NewRegistry(s.outbox, opts.Theme, log)
	s.toolbar = toolbar.New(s.surfaces, &s.notes, opts.ScreenWidth, log)
	s.position, err = position.New(position.Config{
		PageCount:      len(pages),
		PageWidth:      opts.PageWidth,
		SettleDebounce: opts.SettleDebounce,
		SuppressWindow: opts.SuppressWindow,
		Clock:          opts.Clock,
		Scroller:       scrollerFunc(s.requestScroll),
		Post:           s.post,
		OnChange:       s.pageChanged,
	}, log)
	if err != nil {
		return nil, err
	}

	go s.run()
	log.Info("session opened", "title", title, "pages", len(pages), "budget", opts.Budget)
	return s, nil
}

func (s *Session) ID() string    { return s.id }
func (s *Session) Title() string { return s.title }

// PageCount returns the number of pages, at least 1.
func (s *Session) PageCount() int { return len(s.pages) }

// Pages returns a copy of the pages.
func (s *Session) Pages() []paginate.Page {
	out := make([]paginate.Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Done is closed when the session has stopped.
func (s *Session) Done() <-chan struct{} { return s.stopped }

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case f := <-s.events:
			f()
		case <-s.done:
			return
		}
	}
}

// post queues f on the session loop. Work posted after Close is dropped.
func (s *Session) post(f func()) {
	select {
	case s.events <- f:
	case <-s.done:
	}
}

// do runs f on the session loop and waits for its result.
func (s *Session) do(f func() error) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	errc := make(chan error, 1)
	select {
	case s.events <- func() { errc <- f() }:
	case <-s.done:
		return ErrSessionClosed
	}
	select {
	case err := <-errc:
		return err
	case <-s.done:
		return ErrSessionClosed
	}
}

// Close stops pending timers, unmounts every surface and ends the loop.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		_ = s.do(func() error {
			s.position.Stop()
			for _, index := range s.surfaces.Mounted() {
				s.surfaces.Unmount(index)
			}
			return nil
		})
		close(s.done)
		<-s.stopped
		s.log.Info("session closed")
	})
}

func (s *Session) checkPage(page int) error {
	if page < 0 || page >= len(s.pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, len(s.pages))
	}
	return nil
}

func (s *Session) requestScroll(offsetX float64, animated bool) {
	var seq uint64 = 1
	if s.scroll != nil {
		seq = s.scroll.Seq + 1
	}
	s.scroll = &Scroll{Seq: seq, OffsetX: offsetX, Animated: animated}
}

func (s *Session) pageChanged(prev, next int, src position.Source) {
	s.log.Debug("page changed", "from", prev, "to", next, "source", src)
	s.toolbar.PageChanged()
}

func (s *Session) view() View {
	v := View{
		ID:        s.id,
		Title:     s.title,
		PageCount: len(s.pages),
		Position:  s.position.State(),
		Progress:  s.position.Progress(),
		Theme:     s.surfaces.Theme(),
		Toolbar:   s.toolbar.State(),
		Notes:     s.notes.state,
		Mounted:   s.surfaces.Mounted(),
	}
	if s.scroll != nil {
		sc := *s.scroll
		v.Scroll = &sc
	}
	return v
}

// View returns a snapshot of the reader state.
func (s *Session) View() (View, error) {
	var v View
	err := s.do(func() error {
		v = s.view()
		return nil
	})
	return v, err
}

// Menu returns the page-list menu entries.
func (s *Session) Menu() ([]position.MenuItem, error) {
	var items []position.MenuItem
	err := s.do(func() error {
		items = s.position.Menu(s.pages)
		return nil
	})
	return items, err
}
