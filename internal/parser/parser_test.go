package parser

import (
	"errors"
	"testing"

	"github.com/tatianab/pokemon-agent/internal/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantAction    models.Action
		wantReasoning string
		wantErr       error
	}{
		{
			name:          "reasoning then action",
			text:          "REASONING: Oak's lab is north.\nACTION: up",
			wantAction:    models.ActionUp,
			wantReasoning: "Oak's lab is north.",
		},
		{
			name:          "case insensitive markers and token",
			text:          "reasoning: talk to the nurse\naction: A",
			wantAction:    models.ActionA,
			wantReasoning: "talk to the nurse",
		},
		{
			name:          "multi-line reasoning",
			text:          "REASONING: first line\nsecond line\n\nACTION: left\n",
			wantAction:    models.ActionLeft,
			wantReasoning: "first line\nsecond line",
		},
		{
			name:          "missing reasoning uses default",
			text:          "I think we should go.\nACTION: down",
			wantAction:    models.ActionDown,
			wantReasoning: DefaultReasoning,
		},
		{
			name:          "action before reasoning",
			text:          "ACTION: start\nREASONING: open the menu",
			wantAction:    models.ActionStart,
			wantReasoning: "open the menu",
		},
		{
			name:          "bracketed token",
			text:          "REASONING: explore\nACTION: [right]",
			wantAction:    models.ActionRight,
			wantReasoning: "explore",
		},
		{
			name:          "markdown markers",
			text:          "**REASONING:** the door is left\n**ACTION:** left",
			wantAction:    models.ActionLeft,
			wantReasoning: "the door is left",
		},
		{
			name:    "no action marker",
			text:    "REASONING: I am not sure what to do.",
			wantErr: ErrNoAction,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: ErrNoAction,
		},
		{
			name:    "token outside vocabulary",
			text:    "REASONING: use a move\nACTION: thunderbolt",
			wantErr: ErrInvalidAction,
		},
		{
			name:    "prefix of a valid token is not accepted",
			text:    "ACTION: upward",
			wantErr: ErrInvalidAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse error = %v", err)
			}
			if got.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", got.Action, tt.wantAction)
			}
			if got.Reasoning != tt.wantReasoning {
				t.Errorf("Reasoning = %q, want %q", got.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestParseNeverReturnsInvalidAction(t *testing.T) {
	inputs := []string{
		"ACTION: ",
		"ACTION: 42",
		"ACTION: a_b",
		"ACTION:select",
		"action: SeLeCt and then more",
		"ACTION: été",
		"ACTION: b\nACTION: jump",
		"nothing here",
	}
	for _, in := range inputs {
		res, err := Parse(in)
		if err != nil {
			continue
		}
		if !res.Action.Valid() {
			t.Fatalf("Parse(%q) returned invalid action %q", in, res.Action)
		}
	}
}
