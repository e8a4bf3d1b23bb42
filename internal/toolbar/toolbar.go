// Package toolbar implements the floating selection toolbar: it appears next
// to a text selection reported by a surface and turns user actions into
// bridge commands.
package toolbar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pagewise/internal/bridge"
)

var (
	// ErrUnimplementedAction is returned for actions the reader shows but
	// does not support yet.
	ErrUnimplementedAction = errors.New("toolbar: action not available")

	// ErrUnknownAction is returned for action names the toolbar does not
	// offer.
	ErrUnknownAction = errors.New("toolbar: unknown action")

	// ErrNoSelection is returned when an action arrives while no selection
	// is active.
	ErrNoSelection = errors.New("toolbar: no active selection")
)

// Mode is the state machine state.
type Mode string

const (
	ModeIdle      Mode = "idle"
	ModeSelecting Mode = "selecting"
	ModeNotes     Mode = "notes"
)

// Action is a toolbar button.
type Action string

const (
	ActionHighlight   Action = "highlight"
	ActionNotes       Action = "notes"
	ActionTranslate   Action = "translate"
	ActionShare       Action = "share"
	ActionCopy        Action = "copy"
	ActionErrorReport Action = "error-report"
	ActionClose       Action = "close"
)

// Actions lists the buttons in display order.
var Actions = []Action{
	ActionHighlight, ActionNotes, ActionTranslate, ActionShare,
	ActionCopy, ActionErrorReport, ActionClose,
}

// Available reports whether an action has an implementation.
func (a Action) Available() bool {
	switch a {
	case ActionHighlight, ActionNotes, ActionClose:
		return true
	}
	return false
}

// Point is a screen position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is what the host renders for the toolbar.
type State struct {
	Visible      bool   `json:"visible"`
	SelectedText string `json:"selected_text"`
	Position     Point  `json:"position"`
	Mode         Mode   `json:"mode"`
	Page         int    `json:"page"`
}

// Commander delivers a command to the surface of a page.
type Commander interface {
	Send(page int, cmd bridge.Command) error
}

// NotesSurface captures a note about the selected text.
type NotesSurface interface {
	Open(prefill string)
}

// AnchorOffsetY is the vertical distance between the top of the selection
// and the toolbar anchor.
const AnchorOffsetY = 80

// Anchor places the toolbar for a selection: horizontally at a third of the
// screen, vertically below the selection's top edge.
func Anchor(ev bridge.SelectionEvent, screenWidth float64) Point {
	return Point{X: screenWidth / 3, Y: ev.Y + AnchorOffsetY}
}

// Machine is the selection toolbar state machine. It is not safe for
// concurrent use.
type Machine struct {
	commands    Commander
	notes       NotesSurface
	screenWidth float64
	log         *slog.Logger

	state State
}

// New creates an idle toolbar.
func New(commands Commander, notes NotesSurface, screenWidth float64, log *slog.Logger) *Machine {
	return &Machine{
		commands:    commands,
		notes:       notes,
		screenWidth: screenWidth,
		log:         log,
		state:       State{Mode: ModeIdle},
	}
}

// State returns the current toolbar state.
func (m *Machine) State() State { return m.state }

// Select handles a selection event from the surface of page. An empty
// selection closes the toolbar; the surface already has no selection, so no
// clear command is sent.
func (m *Machine) Select(page int, ev bridge.SelectionEvent) {
	if m.state.Mode == ModeNotes {
		m.log.Debug("selection ignored while notes are open", "page", page)
		return
	}
	if ev.Empty() {
		m.reset()
		return
	}
	m.state = State{
		Visible:      true,
		SelectedText: ev.Text,
		Position:     Anchor(ev, m.screenWidth),
		Mode:         ModeSelecting,
		Page:         page,
	}
}

// Do performs a toolbar action.
func (m *Machine) Do(a Action) error {
	switch a {
	case ActionHighlight, ActionNotes, ActionClose:
	case ActionTranslate, ActionShare, ActionCopy, ActionErrorReport:
		return fmt.Errorf("%w: %s", ErrUnimplementedAction, a)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	if m.state.Mode != ModeSelecting {
		return fmt.Errorf("%w: %s", ErrNoSelection, a)
	}

	switch a {
	case ActionHighlight:
		m.send(bridge.Highlight())
		m.reset()
	case ActionNotes:
		text := m.state.SelectedText
		m.state.Visible = false
		m.state.Mode = ModeNotes
		m.notes.Open(text)
	case ActionClose:
		m.close()
	}
	return nil
}

// NotesClosed returns the toolbar to idle after the notes surface closes.
func (m *Machine) NotesClosed() {
	if m.state.Mode != ModeNotes {
		return
	}
	m.reset()
}

// PageChanged closes an open toolbar; its anchor belongs to a page that is
// no longer visible.
func (m *Machine) PageChanged() {
	if m.state.Mode == ModeSelecting {
		m.close()
	}
}

func (m *Machine) close() {
	m.send(bridge.ClearSelection())
	m.reset()
}

func (m *Machine) send(cmd bridge.Command) {
	if err := m.commands.Send(m.state.Page, cmd); err != nil {
		m.log.Warn("toolbar command not delivered", "page", m.state.Page, "kind", cmd.Kind, "error", err)
	}
}

func (m *Machine) reset() {
	m.state = State{Mode: ModeIdle}
}
