package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	bt "github.com/comalice/behaviortree"
	"github.com/comalice/behaviortree/internal/extensibility"
	"github.com/comalice/behaviortree/internal/primitives"
	"github.com/comalice/behaviortree/realtime"
)

// Blackboard keys.
const (
	keyBattery  = "battery"
	keyProgress = "collect_progress"
	keyObstacle = "obstacle"
	keyUploads  = "upload_attempt"
)

const (
	defaultThreshold    = 30
	defaultCollectTicks = 3
)

// robot owns the leaf callbacks of the demo tree. All world state is on the
// blackboard.
type robot struct {
	bb     *bt.Blackboard
	out    io.Writer
	logger *zap.Logger
	warmup time.Duration
	start  time.Time
	now    func() uint32
}

func newRobot(cfg robotConfig, out io.Writer, logger *zap.Logger) *robot {
	bb := bt.NewBlackboard()
	bb.Set(keyBattery, cfg.Battery)
	bb.Set(keyProgress, 0)
	bb.Set(keyObstacle, cfg.Obstacle)
	bb.Set(keyUploads, 0)
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &robot{bb: bb, out: out, logger: logger, warmup: cfg.Warmup, start: time.Now()}
	r.now = r.elapsedMillis
	return r
}

// elapsedMillis is a millisecond clock that wraps after about 49 days. It
// never returns zero, which TimeAnchor reserves for "no anchor".
func (r *robot) elapsedMillis() uint32 {
	return nonZero(uint32(time.Since(r.start).Milliseconds()) + 1)
}

// anchorAfter returns the anchor d past now, skipping zero on wrap.
func anchorAfter(now uint32, d time.Duration) uint32 {
	return nonZero(now + uint32(d.Milliseconds()))
}

func nonZero(ms uint32) uint32 {
	if ms == 0 {
		return 1
	}
	return ms
}

// timeAnchorReady reports whether n may run now. A zero anchor is always
// ready; a reached anchor is consumed.
func (r *robot) timeAnchorReady(n *bt.Node) bool {
	if n.TimeAnchor == 0 {
		return true
	}
	now := r.now()
	if now >= n.TimeAnchor {
		n.TimeAnchor = 0
		return true
	}
	fmt.Fprintf(r.out, "[time] %s waiting until %d ms (now %d)\n", n, n.TimeAnchor, now)
	return false
}

// gated wraps a leaf so that it reports Running until its anchor is reached.
func (r *robot) gated(fn bt.TickFunc) bt.TickFunc {
	return func(n *bt.Node) bt.Status {
		if !r.timeAnchorReady(n) {
			return bt.Running
		}
		return fn(n)
	}
}

func (r *robot) battery() int {
	b, _ := r.bb.GetInt(keyBattery)
	return b
}

func (r *robot) batteryAbove(n *bt.Node) bt.Status {
	th, ok := primitives.DataInt(n, "threshold")
	if !ok {
		th = defaultThreshold
	}
	if r.battery() > th {
		return bt.Success
	}
	return bt.Failure
}

func (r *robot) collect(n *bt.Node) bt.Status {
	need, ok := primitives.DataInt(n, "ticks")
	if !ok {
		need = defaultCollectTicks
	}
	progress, _ := r.bb.GetInt(keyProgress)
	if progress >= need {
		fmt.Fprintln(r.out, "[collect] done.")
		return bt.Success
	}
	progress++
	r.bb.Set(keyProgress, progress)
	fmt.Fprintf(r.out, "[collect] progress=%d/%d, battery=%d%%\n", progress, need, r.battery())
	r.bb.Update(keyBattery, func(old any) any {
		if b, _ := old.(int); b > 0 {
			return b - 1
		}
		return 0
	})
	return bt.Running
}

func (r *robot) handleObstacle(*bt.Node) bt.Status {
	if present, _ := r.bb.GetBool(keyObstacle); !present {
		return bt.Failure
	}
	fmt.Fprintln(r.out, "[avoid] obstacle detected -> avoiding...")
	r.bb.Set(keyObstacle, false)
	return bt.Success
}

func (r *robot) passThrough(*bt.Node) bt.Status {
	fmt.Fprintln(r.out, "[avoid] nothing to do, pass-through.")
	return bt.Success
}

// uploadOnce fails its first attempt ever and succeeds afterwards.
func (r *robot) uploadOnce(*bt.Node) bt.Status {
	attempt, _ := r.bb.GetInt(keyUploads)
	attempt++
	r.bb.Set(keyUploads, attempt)
	if attempt < 2 {
		fmt.Fprintf(r.out, "[upload] attempt #%d -> FAILURE\n", attempt)
		return bt.Failure
	}
	fmt.Fprintf(r.out, "[upload] attempt #%d -> SUCCESS\n", attempt)
	return bt.Success
}

// recharge refills the battery. Upload attempts persist across cycles.
func (r *robot) recharge(*bt.Node) bt.Status {
	fmt.Fprintln(r.out, "[recharge] charging...")
	r.bb.Set(keyBattery, 100)
	r.bb.Set(keyProgress, 0)
	return bt.Success
}

func (r *robot) resetProgress(n *bt.Node) {
	r.bb.Set(keyProgress, 0)
	fmt.Fprintln(r.out, ">> work sequence enter: reset collect_progress")
	if r.warmup > 0 {
		for _, c := range findChildren(n, "collect") {
			c.TimeAnchor = anchorAfter(r.now(), r.warmup)
		}
	}
}

func (r *robot) logEnter(n *bt.Node) {
	fmt.Fprintf(r.out, ">> enter node %s\n", n)
}

func (r *robot) logExit(n *bt.Node) {
	fmt.Fprintf(r.out, "<< exit  node %s with status=%s\n", n, n.Status())
}

// registry binds the callback names used by the tree description.
func (r *robot) registry() (*primitives.Registry, error) {
	reg := primitives.NewRegistry()
	leaves := map[string]bt.TickFunc{
		"battery_above":   r.batteryAbove,
		"collect":         r.collect,
		"handle_obstacle": r.handleObstacle,
		"pass_through":    r.passThrough,
		"upload_once":     r.uploadOnce,
		"recharge":        r.recharge,
	}
	for name, fn := range leaves {
		fn = extensibility.Recover(r.gated(fn), extensibility.PanicLogger(r.logger))
		if err := reg.RegisterLeaf(name, extensibility.Logging(name, fn, r.logger)); err != nil {
			return nil, err
		}
	}
	hooks := map[string]bt.HookFunc{
		"reset_progress": r.resetProgress,
		"log_enter":      r.logEnter,
		"log_exit":       r.logExit,
	}
	for name, fn := range hooks {
		if err := reg.RegisterHook(name, fn); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func findChildren(root *bt.Node, name string) []*bt.Node {
	var found []*bt.Node
	bt.Walk(root, func(n *bt.Node, _ int) bool {
		if n.Name == name {
			found = append(found, n)
		}
		return true
	})
	return found
}

// console prints one line per tick and injects the scripted battery drain.
// It runs on the ticking goroutine.
type console struct {
	r          *robot
	drainAfter uint64
	drainTo    int
}

var _ realtime.Publisher = (*console)(nil)

func (c *console) Publish(_ context.Context, rec realtime.TickRecord) error {
	fmt.Fprintf(c.r.out, "[main] tick=%d => root status=%s, battery=%d%%\n", rec.Tick, rec.Status, c.r.battery())
	if c.drainAfter != 0 && rec.Tick == c.drainAfter {
		c.r.bb.Set(keyBattery, c.drainTo)
	}
	return nil
}

func (c *console) Close() error { return nil }
