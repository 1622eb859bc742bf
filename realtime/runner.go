package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bt "github.com/comalice/behaviortree"
)

// Runner ticks a behavior tree at a fixed rate. All ticks, whether issued by
// the loop or by Step, are serialized.
type Runner struct {
	root *bt.Node
	id   string
	cfg  Config

	logger    *zap.Logger
	metrics   *Metrics
	publisher Publisher

	// stepMu serializes ticks of the tree.
	stepMu sync.Mutex

	// mu guards the fields below.
	mu      sync.Mutex
	tickNum uint64
	last    bt.Status
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRunner creates a runner for root. Zero Config fields take defaults.
func NewRunner(root *bt.Node, cfg Config, opts ...Option) *Runner {
	r := &Runner{
		root:   root,
		id:     uuid.NewString(),
		cfg:    cfg.withDefaults(),
		logger: zap.NewNop(),
		last:   bt.Failure,
		ctx:    context.Background(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("runner", r.id))
	return r
}

// ID returns the runner's identifier.
func (r *Runner) ID() string {
	return r.id
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Start launches the tick loop. It fails if the runner was started before,
// if the config is invalid or if there is no root to tick.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}
	if r.root == nil {
		return ErrNilRoot
	}

	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return ErrAlreadyStarted
	}
	r.started = true
	r.ctx, r.cancel = context.WithCancel(ctx)
	loopCtx := r.ctx
	r.mu.Unlock()

	r.logger.Info("runner started",
		zap.Stringer("root", r.root),
		zap.Duration("tick_rate", r.cfg.TickRate),
		zap.Uint64("max_ticks", r.cfg.MaxTicks),
		zap.Bool("stop_on_terminal", r.cfg.StopOnTerminal),
	)

	go r.loop(loopCtx)
	return nil
}

// Stop cancels the loop and waits for it to exit. Calling it again is a
// no-op.
func (r *Runner) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrNotStarted
	}
	cancel := r.cancel
	r.mu.Unlock()

	cancel()
	<-r.done

	r.stepMu.Lock()
	p := r.publisher
	r.publisher = nil
	r.stepMu.Unlock()

	if p != nil {
		if err := p.Close(); err != nil {
			r.logger.Warn("closing publisher", zap.Error(err))
		}
	}
	return nil
}

// Done is closed when the tick loop exits.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// TickNumber returns the number of completed ticks.
func (r *Runner) TickNumber() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickNum
}

// LastStatus returns the outcome of the most recent tick, or Failure if the
// tree has not been ticked yet.
func (r *Runner) LastStatus() bt.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.cfg.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopped", zap.Uint64("ticks", r.TickNumber()))
			return
		case <-ticker.C:
			status := r.Step()
			if r.cfg.StopOnTerminal && status.IsTerminal() {
				r.logger.Info("tree finished", zap.Stringer("status", status), zap.Uint64("ticks", r.TickNumber()))
				return
			}
			if r.cfg.MaxTicks > 0 && r.TickNumber() >= r.cfg.MaxTicks {
				r.logger.Info("tick limit reached", zap.Uint64("ticks", r.cfg.MaxTicks), zap.Stringer("status", status))
				return
			}
		}
	}
}
