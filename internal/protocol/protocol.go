// Package protocol holds the game server's wire types: the JSON bodies of
// the HTTP API and the envelopes of the websocket feed.
package protocol

import (
	"encoding/json"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// Websocket message types.
const (
	MsgWelcome = "welcome"
	MsgAction  = "action"
)

// Console power states reported by /status.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

// Envelope wraps every websocket message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Status is the body of GET /status.
type Status struct {
	Status string `json:"status"`
	Frame  uint64 `json:"frame"`
}

// ExecuteRequest is the body of POST /execute_action.
type ExecuteRequest struct {
	Action     string `json:"action"`
	Commentary string `json:"commentary,omitempty"`
}

// Result is the body of POST /execute_action and GET /start_game.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Welcome is sent once to every new feed subscriber.
type Welcome struct {
	Status
	State models.GameState `json:"state"`
}

// ActionEvent is broadcast for every executed action.
type ActionEvent struct {
	Action     models.Action `json:"action"`
	Commentary string        `json:"commentary,omitempty"`
	Frame      uint64        `json:"frame"`
}
