// Package console defines what the agent needs from an emulated console and
// provides RAM, an in-memory console backed by a memory dump.
package console

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/tatianab/pokemon-agent/internal/models"
)

// AddressSpace is the size of the console's flat address space.
const AddressSpace = 0x10000

// ErrNoScreen is returned by Screenshot when no frame is available.
var ErrNoScreen = errors.New("no screen available")

// Input is the console's button model.
type Input interface {
	Press(models.Action)
	Release(models.Action)
	// Tick advances emulation by frames.
	Tick(frames int)
}

// Screen produces the current video frame.
type Screen interface {
	Screenshot() (image.Image, error)
}

// Machine is a whole console: memory, buttons, video and power.
type Machine interface {
	Peek(addr uint16) uint8
	Input
	Screen
	Start()
	Running() bool
	Frame() uint64
}

// EventKind distinguishes a press from a release.
type EventKind int

const (
	EventPress EventKind = iota
	EventRelease
)

func (k EventKind) String() string {
	if k == EventRelease {
		return "release"
	}
	return "press"
}

// Event is one recorded input signal.
type Event struct {
	Kind   EventKind
	Action models.Action
	Frame  uint64
}

// RAM is an in-memory console. It does not emulate the CPU: memory only
// changes through Poke, and inputs are recorded with the frame they landed on.
type RAM struct {
	mu      sync.Mutex
	mem     []byte
	frame   uint64
	events  []Event
	held    map[models.Action]bool
	screen  image.Image
	running bool
}

var _ Machine = (*RAM)(nil)

// NewRAM returns a zeroed console.
func NewRAM() *RAM {
	return &RAM{
		mem:  make([]byte, AddressSpace),
		held: make(map[models.Action]bool),
	}
}

// LoadDump builds a console from a raw memory dump. Dumps shorter than the
// address space are zero-padded.
func LoadDump(path string) (*RAM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ram dump: %w", err)
	}
	if len(data) > AddressSpace {
		return nil, fmt.Errorf("ram dump %s is %d bytes, larger than the %d byte address space", path, len(data), AddressSpace)
	}
	r := NewRAM()
	copy(r.mem, data)
	return r, nil
}

// LoadScreen sets the frame returned by Screenshot from a PNG file.
func (r *RAM) LoadScreen(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode screen %s: %w", path, err)
	}
	r.SetScreen(img)
	return nil
}

// SetScreen replaces the current frame.
func (r *RAM) SetScreen(img image.Image) {
	r.mu.Lock()
	r.screen = img
	r.mu.Unlock()
}

func (r *RAM) Peek(addr uint16) uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mem[addr]
}

// Poke writes one byte.
func (r *RAM) Poke(addr uint16, v uint8) {
	r.mu.Lock()
	r.mem[addr] = v
	r.mu.Unlock()
}

// PokeBytes writes b starting at addr, wrapping at the top of memory.
func (r *RAM) PokeBytes(addr uint16, b ...uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range b {
		r.mem[addr+uint16(i)] = v
	}
}

func (r *RAM) Press(a models.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held[a] = true
	r.events = append(r.events, Event{Kind: EventPress, Action: a, Frame: r.frame})
}

func (r *RAM) Release(a models.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, a)
	r.events = append(r.events, Event{Kind: EventRelease, Action: a, Frame: r.frame})
}

func (r *RAM) Tick(frames int) {
	if frames <= 0 {
		return
	}
	r.mu.Lock()
	r.frame += uint64(frames)
	r.mu.Unlock()
}

// Frame returns the number of frames advanced so far.
func (r *RAM) Frame() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Held reports whether a is currently pressed.
func (r *RAM) Held(a models.Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.held[a]
}

// Events returns a copy of the recorded input log.
func (r *RAM) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *RAM) Screenshot() (image.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.screen == nil {
		return nil, ErrNoScreen
	}
	return r.screen, nil
}

// Start marks the console as running. It is idempotent.
func (r *RAM) Start() {
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
}

// Running reports whether Start has been called.
func (r *RAM) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
