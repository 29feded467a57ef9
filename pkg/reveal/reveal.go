// Package reveal implements the one-shot "dissolve-in" transition used for
// the splash screen.
//
// An [Animator] takes whatever the [screen.Buffer] currently holds as its
// target, replaces the interior with the border glyph, and then copies the
// target back in randomly chosen batches that grow each frame. Every cell is
// revealed exactly once.
package reveal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/adastra/pkg/screen"
)

// Batch sizes and timing used unless overridden with [WithBatch],
// [WithInterval] and [WithDelay].
const (
	DefaultBase     = 10
	DefaultStep     = 5
	DefaultInterval = 30 * time.Millisecond
	DefaultDelay    = 500 * time.Millisecond
)

// ErrNotIdle is returned when [Animator.Run] is called more than once.
var ErrNotIdle = errors.New("reveal already started")

// State is the lifecycle stage of an [Animator].
type State int

const (
	// StateIdle is the state before [Animator.Run].
	StateIdle State = iota
	// StateBuilding snapshots the target and fills the working grid.
	StateBuilding
	// StateRevealing draws batches of cells.
	StateRevealing
	// StateDone means the buffer holds the target again.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateRevealing:
		return "revealing"
	case StateDone:
		return "done"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Drawer renders the buffer. Shallow draws only reposition the cursor.
type Drawer interface {
	Draw(shallow bool) error
}

// Flusher discards buffered input.
type Flusher interface {
	Flush()
}

type nopFlusher struct{}

func (nopFlusher) Flush() {}

// Animator runs the reveal transition on a [screen.Buffer].
type Animator struct {
	drawer    Drawer
	flusher   Flusher
	rand      *rand.Rand
	logger    *slog.Logger
	tracer    trace.Tracer
	buf       *screen.Buffer
	base      int
	step      int
	interval  time.Duration
	delay     time.Duration
	state     State
	remaining int
	mu        sync.Mutex
}

// Opt configures an [Animator].
type Opt func(*Animator)

// WithBatch sets the size of the first batch and how much each following
// batch grows by.
func WithBatch(base, step int) Opt {
	return func(a *Animator) {
		a.base = max(1, base)
		a.step = max(0, step)
	}
}

// WithInterval sets the pause between frames.
func WithInterval(d time.Duration) Opt {
	return func(a *Animator) {
		a.interval = d
	}
}

// WithDelay sets the pause before the first frame.
func WithDelay(d time.Duration) Opt {
	return func(a *Animator) {
		a.delay = d
	}
}

// WithRand sets the random source used to pick cells.
func WithRand(r *rand.Rand) Opt {
	return func(a *Animator) {
		a.rand = r
	}
}

// WithSeed is like [WithRand] with a PCG source seeded from seed.
func WithSeed(seed uint64) Opt {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithFlusher sets what discards input typed during the pauses.
func WithFlusher(f Flusher) Opt {
	return func(a *Animator) {
		a.flusher = f
	}
}

// WithLogger sets the logger for draw and flush failures.
func WithLogger(l *slog.Logger) Opt {
	return func(a *Animator) {
		a.logger = l
	}
}

// New creates an [Animator] drawing buf with d.
func New(buf *screen.Buffer, d Drawer, opts ...Opt) *Animator {
	a := &Animator{
		buf:      buf,
		drawer:   d,
		flusher:  nopFlusher{},
		rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   slog.Default(),
		tracer:   otel.Tracer("github.com/macropower/adastra/pkg/reveal"),
		base:     DefaultBase,
		step:     DefaultStep,
		interval: DefaultInterval,
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// State returns the current lifecycle stage.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Remaining returns the number of cells not yet revealed.
func (a *Animator) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.remaining
}

// Run plays the transition towards the current contents of the buffer and
// blocks until it is complete. It may only be called once.
//
// If ctx is canceled, the target is committed immediately and ctx.Err()
// is returned.
func (a *Animator) Run(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateIdle {
		a.mu.Unlock()

		return fmt.Errorf("%w: state is %s", ErrNotIdle, a.state)
	}

	a.state = StateBuilding
	a.mu.Unlock()

	ctx, span := a.tracer.Start(ctx, "reveal")
	defer span.End()

	err := sleep(ctx, a.delay)
	if err != nil {
		a.finish(0)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	target := a.buf.Snapshot()
	g := newGrids(target, a.buf.Layout().Border)
	total := len(g.pool)

	span.SetAttributes(attribute.Int("cells", total))

	err = a.buf.SetRows(0, g.rows())
	if err != nil {
		a.finish(0)

		return fmt.Errorf("build working grid: %w", err)
	}

	a.setState(StateRevealing, total)

	frames := 0
	for i := 0; !g.done(); i++ {
		err = ctx.Err()
		if err == nil {
			a.frame(g, a.base+a.step*i)
			frames++

			err = sleep(ctx, a.interval)
			if g.done() {
				// The last frame is already the target.
				err = nil
			}
		}

		if err != nil {
			// The target rows are already width-checked.
			_ = a.buf.SetRows(0, target)
			a.finish(frames)
			span.SetStatus(codes.Error, err.Error())

			return err
		}

		a.flusher.Flush()
	}

	a.finish(frames)
	span.SetAttributes(attribute.Int("frames", frames))

	return nil
}

// frame reveals up to n random cells and draws the result.
func (a *Animator) frame(g *grids, n int) {
	n = min(n, len(g.pool))
	for range n {
		last := len(g.pool) - 1
		j := a.rand.IntN(last + 1)

		g.reveal(g.pool[j])
		g.pool[j] = g.pool[last]
		g.pool = g.pool[:last]
	}

	a.mu.Lock()
	a.remaining = len(g.pool)
	a.mu.Unlock()

	// Rebuilt rows keep every cell width, so this cannot mismatch.
	_ = a.buf.SetRows(0, g.rows())

	err := a.drawer.Draw(true)
	if err != nil {
		a.logger.Debug("draw reveal frame", slog.Any("err", err))
	}
}

func (a *Animator) setState(s State, remaining int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = s
	a.remaining = remaining
}

func (a *Animator) finish(frames int) {
	a.setState(StateDone, 0)
	a.logger.Debug("reveal finished", slog.Int("frames", frames))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
