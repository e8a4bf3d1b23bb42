package bridge

import (
	"encoding/json"
	"fmt"
)

// Command is a host to surface instruction.
type Command struct {
	Kind Kind
	Dark bool // theme only
}

// Theme returns a theme-set command.
func Theme(dark bool) Command {
	return Command{Kind: KindTheme, Dark: dark}
}

// Highlight returns a highlight-apply command.
func Highlight() Command {
	return Command{Kind: KindHighlight}
}

// ClearSelection returns a selection-clear command.
func ClearSelection() Command {
	return Command{Kind: KindClearSelection}
}

func (c Command) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindTheme:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			Dark bool `json:"dark"`
		}{c.Kind, c.Dark})
	case KindHighlight, KindClearSelection:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
		}{c.Kind})
	default:
		return nil, fmt.Errorf("bridge: unknown command kind %q", c.Kind)
	}
}

// EncodeCommand serializes a command.
func EncodeCommand(c Command) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeCommand parses a serialized command.
func DecodeCommand(raw string) (Command, error) {
	var w struct {
		Kind *Kind `json:"kind"`
		Dark *bool `json:"dark"`
	}
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Command{}, &ProtocolError{Raw: raw, Reason: "malformed command", Err: err}
	}
	if w.Kind == nil {
		return Command{}, &ProtocolError{Raw: raw, Reason: "missing field kind"}
	}
	switch *w.Kind {
	case KindTheme:
		if w.Dark == nil {
			return Command{}, &ProtocolError{Raw: raw, Reason: "missing field dark"}
		}
		return Theme(*w.Dark), nil
	case KindHighlight, KindClearSelection:
		return Command{Kind: *w.Kind}, nil
	}
	return Command{}, &ProtocolError{Raw: raw, Reason: fmt.Sprintf("unknown command kind %q", *w.Kind)}
}

// Script wraps the command into the call the surface runtime evaluates.
func (c Command) Script() (string, error) {
	payload, err := EncodeCommand(c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("window.__pagewise && window.__pagewise.receive(%s);\ntrue;", payload), nil
}
