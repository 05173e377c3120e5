// Package executor turns symbolic actions into timed button presses.
package executor

import (
	"log"

	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/models"
)

const (
	// HoldFrames is how long a button stays pressed, and how long the console
	// runs after release, so the game registers the input.
	HoldFrames = 5
	// DefaultSequenceDelay is the gap between actions of a sequence.
	DefaultSequenceDelay = 10
)

// Executor owns the console input for the control loop. It is not safe for
// concurrent use.
type Executor struct {
	input  console.Input
	logger *log.Logger
}

// New returns an executor over in. A nil logger uses log.Default().
func New(in console.Input, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{input: in, logger: logger}
}

// Execute presses and releases the button for a. Symbols outside the
// vocabulary are rejected without touching the console.
func (e *Executor) Execute(a models.Action) bool {
	if !a.Valid() {
		e.logger.Printf("warning: unknown action %q", a)
		return false
	}
	e.input.Press(a)
	e.input.Tick(HoldFrames)
	e.input.Release(a)
	e.input.Tick(HoldFrames)
	return true
}

// ExecuteSequence runs each action in order with delay frames after each one.
// A rejected action does not stop the sequence.
func (e *Executor) ExecuteSequence(actions []models.Action, delay int) []bool {
	results := make([]bool, 0, len(actions))
	for _, a := range actions {
		results = append(results, e.Execute(a))
		e.input.Tick(delay)
	}
	return results
}
