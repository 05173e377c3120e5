package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned for any symbol outside the button vocabulary.
var ErrUnknownAction = errors.New("unknown action")

// Action is a single console button.
type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionLeft   Action = "left"
	ActionRight  Action = "right"
	ActionA      Action = "a"
	ActionB      Action = "b"
	ActionStart  Action = "start"
	ActionSelect Action = "select"
)

var allActions = []Action{
	ActionUp, ActionDown, ActionLeft, ActionRight,
	ActionA, ActionB, ActionStart, ActionSelect,
}

var opposites = map[Action]Action{
	ActionUp:    ActionDown,
	ActionDown:  ActionUp,
	ActionLeft:  ActionRight,
	ActionRight: ActionLeft,
}

// Actions returns the full vocabulary in canonical order.
func Actions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

// Directions returns the four d-pad actions.
func Directions() []Action {
	return []Action{ActionUp, ActionDown, ActionLeft, ActionRight}
}

// ParseAction canonicalizes s (trimmed, lowercased) and validates it.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	return a, nil
}

// Valid reports whether a is one of the eight buttons.
func (a Action) Valid() bool {
	for _, v := range allActions {
		if a == v {
			return true
		}
	}
	return false
}

// IsDirection reports whether a is a d-pad action.
func (a Action) IsDirection() bool {
	_, ok := opposites[a]
	return ok
}

// Opposite returns the reverse direction, or "" for non-directions.
func (a Action) Opposite() Action {
	return opposites[a]
}

func (a Action) String() string {
	return string(a)
}
