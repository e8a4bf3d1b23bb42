// Package bridge defines the string messages exchanged between the reader
// host and its embedded rendering surfaces.
//
// Surfaces post selection events to the host; the host sends theme,
// highlight and clear-selection commands to surfaces. Both directions are
// single JSON strings so either side can live in a different runtime.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// Kind identifies a bridge message.
type Kind string

const (
	KindSelection      Kind = "selection"
	KindTheme          Kind = "theme"
	KindHighlight      Kind = "highlight"
	KindClearSelection Kind = "clear-selection"
)

// ErrProtocol matches every *ProtocolError.
var ErrProtocol = errors.New("bridge: protocol error")

// ProtocolError reports a payload that could not be decoded.
type ProtocolError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bridge: %s: %v (raw: %s)", e.Reason, e.Err, truncate(e.Raw, 120))
	}
	return fmt.Sprintf("bridge: %s (raw: %s)", e.Reason, truncate(e.Raw, 120))
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

// SelectionEvent is a surface report of the native text selection. X is the
// horizontal center of the selection rectangle, Y its top edge.
type SelectionEvent struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Empty reports whether the event signals that the selection was cleared.
func (e SelectionEvent) Empty() bool {
	return e.Text == ""
}

type wireEvent struct {
	Kind *Kind    `json:"kind"`
	Text *string  `json:"text"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// DecodeEvent parses a surface message. Payloads without a kind are treated
// as selection events.
func DecodeEvent(raw string) (SelectionEvent, error) {
	var w wireEvent
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: "malformed payload", Err: err}
	}
	if w.Kind != nil && *w.Kind != KindSelection {
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: fmt.Sprintf("unexpected kind %q", *w.Kind)}
	}
	switch {
	case w.Text == nil:
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: "missing field text"}
	case w.X == nil:
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: "missing field x"}
	case w.Y == nil:
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: "missing field y"}
	}
	if !finite(*w.X) || !finite(*w.Y) {
		return SelectionEvent{}, &ProtocolError{Raw: raw, Reason: "non-finite coordinates"}
	}
	return SelectionEvent{Text: *w.Text, X: *w.X, Y: *w.Y}, nil
}

// EncodeEvent serializes a selection event the way a surface posts it.
func EncodeEvent(ev SelectionEvent) (string, error) {
	b, err := json.Marshal(struct {
		Kind Kind `json:"kind"`
		SelectionEvent
	}{KindSelection, ev})
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	return string(b), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// truncate cuts s to at most n bytes without splitting a character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
