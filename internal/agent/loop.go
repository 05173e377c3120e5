// Package agent runs the control loop: read the game state, let the arbiter
// decide, execute the action, journal the tick.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/tatianab/pokemon-agent/internal/manager"
	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/storage"
)

// DefaultInterval is the pace of the loop: one action per second.
const DefaultInterval = time.Second

var tracer = otel.Tracer("github.com/tatianab/pokemon-agent/internal/agent")

// Source provides the game state and the current frame.
type Source interface {
	State(ctx context.Context) (models.GameState, error)
	Screenshot(ctx context.Context) ([]byte, error)
}

// Sink executes an action.
type Sink interface {
	Execute(ctx context.Context, action models.Action, commentary string) error
}

// TickResult is what happened during one tick.
type TickResult struct {
	Tick     int
	Time     time.Time
	State    models.GameState
	Result   manager.Result
	Executed bool
	// Err is the execution error, if any.
	Err error
}

// Observer is notified after every completed tick.
type Observer func(TickResult)

// Loop is the single-threaded control loop. Tick and Run must not be called
// concurrently.
type Loop struct {
	source   Source
	sink     Sink
	mgr      *manager.Manager
	journal  storage.TickStore
	observer Observer
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time

	tick int
}

// Option configures a Loop.
type Option func(*Loop)

// WithJournal records every tick in s.
func WithJournal(s storage.TickStore) Option {
	return func(l *Loop) { l.journal = s }
}

// WithObserver registers fn to receive every tick result.
func WithObserver(fn Observer) Option {
	return func(l *Loop) { l.observer = fn }
}

// WithInterval sets the minimum time between ticks in Run.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop wires src and sink to mgr.
func NewLoop(src Source, sink Sink, mgr *manager.Manager, opts ...Option) *Loop {
	l := &Loop{
		source:   src,
		sink:     sink,
		mgr:      mgr,
		interval: DefaultInterval,
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ticks returns the number of ticks that got as far as a decision.
func (l *Loop) Ticks() int {
	return l.tick
}

// Tick runs one decode, dispatch, execute cycle. A state read failure aborts
// the tick before anything is decided. A screenshot failure only removes the
// frame from the decision. An execution failure is returned with the result;
// the decision stays recorded.
func (l *Loop) Tick(ctx context.Context) (TickResult, error) {
	ctx, span := tracer.Start(ctx, "agent.Tick")
	defer span.End()

	state, err := l.readState(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read state")
		return TickResult{}, fmt.Errorf("read state: %w", err)
	}

	frame, err := l.source.Screenshot(ctx)
	if err != nil {
		l.logger.Printf("warning: screenshot unavailable: %v", err)
		frame = nil
	}

	l.tick++
	res := TickResult{
		Tick:   l.tick,
		Time:   l.now(),
		State:  state,
		Result: l.mgr.Dispatch(ctx, state, frame),
	}
	span.SetAttributes(
		attribute.Int("tick", res.Tick),
		attribute.String("action", res.Result.Decision.Action.String()),
	)

	if err := l.execute(ctx, res.Result.Decision); err != nil {
		res.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, "execute")
	} else {
		res.Executed = true
	}

	l.record(ctx, res)
	if l.observer != nil {
		l.observer(res)
	}
	if res.Err != nil {
		return res, fmt.Errorf("execute %s: %w", res.Result.Decision.Action, res.Err)
	}
	return res, nil
}

// Run ticks at the configured interval until ctx is done. Tick errors are
// logged and the loop carries on.
func (l *Loop) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(l.interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		res, err := l.Tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			l.logger.Printf("tick %d: %v", l.tick, err)
			continue
		}
		l.logger.Printf("tick %d: %s %s", res.Tick, res.Result.Decision.Action, res.Result.Decision.Commentary)
	}
}

func (l *Loop) readState(ctx context.Context) (models.GameState, error) {
	ctx, span := tracer.Start(ctx, "agent.State")
	defer span.End()
	return l.source.State(ctx)
}

func (l *Loop) execute(ctx context.Context, d models.Decision) error {
	ctx, span := tracer.Start(ctx, "agent.Execute")
	defer span.End()
	return l.sink.Execute(ctx, d.Action, d.Commentary)
}

func (l *Loop) record(ctx context.Context, res TickResult) {
	if l.journal == nil {
		return
	}
	rec := storage.TickRecord{
		Tick:       res.Tick,
		Time:       res.Time,
		Location:   res.State.Location,
		Money:      res.State.Money,
		Badges:     res.State.Badges,
		TeamSize:   len(res.State.PokemonTeam),
		Role:       res.Result.Role,
		Engine:     res.Result.Engine,
		Action:     res.Result.Decision.Action,
		Commentary: res.Result.Decision.Commentary,
		Fallback:   res.Result.Fallback,
		Executed:   res.Executed,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	if err := l.journal.PutTick(ctx, rec); err != nil {
		l.logger.Printf("warning: journal tick %d: %v", res.Tick, err)
	}
}
