package realtime

import (
	"time"

	"go.uber.org/zap"

	bt "github.com/comalice/behaviortree"
)

// Step performs one tick of the tree synchronously and returns its outcome.
// It may be used with or without Start; concurrent calls are serialized.
func (r *Runner) Step() bt.Status {
	r.stepMu.Lock()
	defer r.stepMu.Unlock()

	// Phase 1: tick the tree
	start := time.Now()
	status := r.tickRoot()
	elapsed := time.Since(start)

	// Phase 2: record
	r.mu.Lock()
	r.tickNum++
	n := r.tickNum
	prev := r.last
	r.last = status
	ctx := r.ctx
	r.mu.Unlock()

	// Phase 3: metrics
	r.metrics.observe(status, elapsed)

	// Phase 4: publish
	if r.publisher != nil {
		rec := TickRecord{RunnerID: r.id, Tick: n, Status: status, Duration: elapsed, At: start}
		if err := r.publisher.Publish(ctx, rec); err != nil {
			r.logger.Warn("publish tick record", zap.Uint64("tick", n), zap.Error(err))
		}
	}

	// Phase 5: log
	r.logger.Debug("tick",
		zap.Uint64("tick", n),
		zap.Stringer("status", status),
		zap.Duration("elapsed", elapsed),
	)
	if status.IsTerminal() && prev == bt.Running {
		r.logger.Info("run finished", zap.Uint64("tick", n), zap.Stringer("status", status))
	}
	return status
}

// tickRoot ticks the root, turning a callback panic into Error. Tick has
// already closed every run on the panicking path with Error by then.
func (r *Runner) tickRoot() (status bt.Status) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tick panicked", zap.Any("panic", p), zap.Stack("stack"))
			r.metrics.observePanic()
			status = bt.Error
		}
	}()
	return bt.Tick(r.root)
}
