// Package position owns the reader's current page index and reconciles the
// three inputs that write it: swipe gestures, the progress slider and the
// page-list menu.
package position

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultSettleDebounce coalesces the drag-end and momentum-end events
	// of one swipe into a single commit.
	DefaultSettleDebounce = 200 * time.Millisecond

	// DefaultSuppressWindow covers the animated scroll issued after a slider
	// or menu commit.
	DefaultSuppressWindow = 500 * time.Millisecond
)

// ErrInvalidArgument is returned for out-of-range indexes and sizes.
var ErrInvalidArgument = errors.New("position: invalid argument")

// Source names the input that committed a page index.
type Source string

const (
	SourceSwipe  Source = "swipe"
	SourceSlider Source = "slider"
	SourceMenu   Source = "menu"
)

// Scroller moves the horizontal page view.
type Scroller interface {
	ScrollTo(offsetX float64, animated bool)
}

// Config sets up a Synchronizer.
type Config struct {
	PageCount      int
	PageWidth      float64
	SettleDebounce time.Duration
	SuppressWindow time.Duration

	Clock    clockwork.Clock
	Scroller Scroller

	// Post runs timer callbacks on the owner's event loop. When nil the
	// callback runs on the timer goroutine.
	Post func(func())

	// OnChange is called after a commit moves the current page.
	OnChange func(prev, next int, src Source)
}

// Synchronizer holds the authoritative page index. It is not safe for
// concurrent use; the owning reader serializes calls, including timer
// callbacks delivered through Config.Post.
type Synchronizer struct {
	cfg Config
	log *slog.Logger

	current     int
	slider      float64
	scrolling   bool
	suppressing bool
	menuVisible bool

	gesture     uint64
	committedAt uint64 // gesture of the last swipe commit
	pendingIdx  int

	settleTimer   slot
	suppressTimer slot
}

// State is a read-only view of the synchronizer.
type State struct {
	Current     int     `json:"current_page"`
	Slider      float64 `json:"slider_value"`
	PageCount   int     `json:"page_count"`
	PageWidth   float64 `json:"page_width"`
	Scrolling   bool    `json:"scrolling"`
	Suppressing bool    `json:"suppress_swipe_echo"`
	MenuVisible bool    `json:"menu_visible"`
}

// New creates a Synchronizer at page 0.
func New(cfg Config, log *slog.Logger) (*Synchronizer, error) {
	if cfg.PageCount <= 0 {
		return nil, fmt.Errorf("%w: page count %d", ErrInvalidArgument, cfg.PageCount)
	}
	if cfg.PageWidth <= 0 {
		return nil, fmt.Errorf("%w: page width %v", ErrInvalidArgument, cfg.PageWidth)
	}
	if cfg.SettleDebounce <= 0 {
		cfg.SettleDebounce = DefaultSettleDebounce
	}
	if cfg.SuppressWindow <= 0 {
		cfg.SuppressWindow = DefaultSuppressWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Post == nil {
		cfg.Post = func(f func()) { f() }
	}
	s := &Synchronizer{cfg: cfg, log: log}
	s.settleTimer = slot{clock: cfg.Clock, post: cfg.Post}
	s.suppressTimer = slot{clock: cfg.Clock, post: cfg.Post}
	return s, nil
}

// Current returns the current page index.
func (s *Synchronizer) Current() int { return s.current }

// State returns a snapshot of the synchronizer.
func (s *Synchronizer) State() State {
	return State{
		Current:     s.current,
		Slider:      s.slider,
		PageCount:   s.cfg.PageCount,
		PageWidth:   s.cfg.PageWidth,
		Scrolling:   s.scrolling,
		Suppressing: s.suppressing,
		MenuVisible: s.menuVisible,
	}
}

// SwipeBegin starts a new drag gesture.
func (s *Synchronizer) SwipeBegin() {
	s.gesture++
	s.scrolling = true
	s.settleTimer.stop()
}

// SwipeScroll observes an intermediate scroll position. Intermediate
// positions never commit.
func (s *Synchronizer) SwipeScroll(offsetX float64) {
	if !s.suppressing {
		s.scrolling = true
	}
}

// SwipeSettle handles a drag-end or momentum-end event. While a programmatic
// scroll is animating the event is treated as its echo and ignored.
func (s *Synchronizer) SwipeSettle(offsetX float64) {
	if s.suppressing {
		s.log.Debug("swipe settle suppressed", "offset_x", offsetX)
		return
	}
	s.scrolling = false
	index := s.clamp(int(math.Round(offsetX / s.cfg.PageWidth)))
	if s.committedAt == s.gesture && s.current == index && !s.settleTimer.pending() {
		return
	}
	s.pendingIdx = index
	gesture := s.gesture
	s.settleTimer.arm(s.cfg.SettleDebounce, func() {
		s.committedAt = gesture
		s.commit(s.pendingIdx, SourceSwipe)
	})
}

// SliderMove tracks the slider thumb while it is dragged.
func (s *Synchronizer) SliderMove(value float64) {
	s.slider = math.Max(0, math.Min(value, float64(s.cfg.PageCount-1)))
}

// SliderRelease commits the slider value and scrolls the page view to it.
func (s *Synchronizer) SliderRelease(value float64) int {
	index := s.clamp(int(math.Round(value)))
	s.jump(index, SourceSlider)
	return index
}

// MenuJump commits a page chosen from the page-list menu and closes the menu.
func (s *Synchronizer) MenuJump(index int) error {
	if index < 0 || index >= s.cfg.PageCount {
		return fmt.Errorf("%w: page %d outside [0,%d)", ErrInvalidArgument, index, s.cfg.PageCount)
	}
	s.menuVisible = false
	s.jump(index, SourceMenu)
	return nil
}

// ToggleMenu opens or closes the page-list menu and reports the new state.
func (s *Synchronizer) ToggleMenu() bool {
	s.menuVisible = !s.menuVisible
	return s.menuVisible
}

// CloseMenu hides the page-list menu.
func (s *Synchronizer) CloseMenu() {
	s.menuVisible = false
}

// Resize updates the page width, keeping the current page in view.
func (s *Synchronizer) Resize(pageWidth float64) error {
	if pageWidth <= 0 || math.IsNaN(pageWidth) || math.IsInf(pageWidth, 0) {
		return fmt.Errorf("%w: page width %v", ErrInvalidArgument, pageWidth)
	}
	s.cfg.PageWidth = pageWidth
	if s.cfg.Scroller != nil {
		s.cfg.Scroller.ScrollTo(float64(s.current)*pageWidth, false)
	}
	return nil
}

// Stop cancels pending timers.
func (s *Synchronizer) Stop() {
	s.settleTimer.stop()
	s.suppressTimer.stop()
	s.suppressing = false
}

func (s *Synchronizer) jump(index int, src Source) {
	s.settleTimer.stop()
	s.scrolling = false
	s.commit(index, src)
	s.suppressing = true
	if s.cfg.Scroller != nil {
		s.cfg.Scroller.ScrollTo(float64(index)*s.cfg.PageWidth, true)
	}
	s.suppressTimer.arm(s.cfg.SuppressWindow, func() {
		s.suppressing = false
	})
}

func (s *Synchronizer) commit(index int, src Source) {
	prev := s.current
	s.current = index
	s.slider = float64(index)
	if prev == index {
		return
	}
	s.log.Debug("page committed", "from", prev, "to", index, "source", src)
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(prev, index, src)
	}
}

func (s *Synchronizer) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.cfg.PageCount-1 {
		return s.cfg.PageCount - 1
	}
	return index
}
