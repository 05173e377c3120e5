package agent

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"sync"

	"github.com/tatianab/pokemon-agent/internal/console"
	"github.com/tatianab/pokemon-agent/internal/executor"
	"github.com/tatianab/pokemon-agent/internal/memory"
	"github.com/tatianab/pokemon-agent/internal/models"
)

// Local drives a console in-process. All console access goes through one
// mutex, so a Local can be shared by the loop and the game server.
type Local struct {
	mu      sync.Mutex
	machine console.Machine
	decoder *memory.Decoder
	exec    *executor.Executor
}

// NewLocal returns a Source and Sink over m using layout l.
func NewLocal(m console.Machine, l memory.Layout, logger *log.Logger) *Local {
	return &Local{
		machine: m,
		decoder: memory.NewDecoder(l),
		exec:    executor.New(m, logger),
	}
}

func (l *Local) State(ctx context.Context) (models.GameState, error) {
	if err := ctx.Err(); err != nil {
		return models.GameState{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decoder.Decode(l.machine), nil
}

// Screenshot returns the current frame as PNG bytes.
func (l *Local) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	img, err := l.machine.Screenshot()
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Execute presses the button for action. Commentary is not used locally.
func (l *Local) Execute(ctx context.Context, action models.Action, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.exec.Execute(action) {
		return fmt.Errorf("%w: %q", models.ErrUnknownAction, action)
	}
	return nil
}

// Start powers the console on.
func (l *Local) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machine.Start()
}

// Power reports whether the console runs and how many frames it has advanced.
func (l *Local) Power() (running bool, frame uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.machine.Running(), l.machine.Frame()
}
