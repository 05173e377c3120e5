// Package parser extracts a validated action and its justification from free
// form model output.
//
// The grammar has two labeled sections:
//
//	REASONING: <any text, up to the next ACTION: marker or end of text>
//	ACTION: <one token>
//
// Markers are case-insensitive. Parse never guesses: output without an
// ACTION: marker, or whose token is not a button, is a failure.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// DefaultReasoning is used when the ACTION: marker is present but REASONING: is not.
const DefaultReasoning = "Strategic movement based on analysis."

var (
	// ErrNoAction means the text has no ACTION: marker followed by a token.
	ErrNoAction = errors.New("no action marker in response")
	// ErrInvalidAction means the token after ACTION: is not a button.
	ErrInvalidAction = errors.New("action not in vocabulary")
)

var (
	// The token may be wrapped in the brackets or quotes models copy from the
	// prompt's format line.
	actionPattern    = regexp.MustCompile("(?i)ACTION:[*\\s]*[\\[\"'`]?\\s*(\\w+)")
	reasoningPattern = regexp.MustCompile(`(?is)REASONING:\s*(.*?)(?:ACTION:|$)`)
)

// Result is a successfully parsed response.
type Result struct {
	Action    models.Action
	Reasoning string
}

// Parse extracts the action and reasoning from text.
func Parse(text string) (Result, error) {
	m := actionPattern.FindStringSubmatch(text)
	if m == nil {
		return Result{}, ErrNoAction
	}
	action, err := models.ParseAction(m[1])
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidAction, m[1])
	}

	reasoning := DefaultReasoning
	if rm := reasoningPattern.FindStringSubmatch(text); rm != nil {
		reasoning = strings.TrimSpace(strings.Trim(strings.TrimSpace(rm[1]), "*"))
	}
	return Result{Action: action, Reasoning: reasoning}, nil
}
