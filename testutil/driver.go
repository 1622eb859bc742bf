package testutil

import (
	bt "github.com/comalice/behaviortree"
	"github.com/comalice/behaviortree/realtime"
)

// Driver abstracts how a tree is ticked so the same scenario can be checked
// against the bare interpreter and against the realtime runner.
type Driver interface {
	Tick() bt.Status
	Ticks() uint64
}

// DirectDriver calls behaviortree.Tick on its root.
type DirectDriver struct {
	root  *bt.Node
	ticks uint64
}

func NewDirectDriver(root *bt.Node) *DirectDriver {
	return &DirectDriver{root: root}
}

func (d *DirectDriver) Tick() bt.Status {
	d.ticks++
	return bt.Tick(d.root)
}

func (d *DirectDriver) Ticks() uint64 {
	return d.ticks
}

// RunnerDriver steps a realtime.Runner synchronously, without its ticker.
type RunnerDriver struct {
	rt *realtime.Runner
}

func NewRunnerDriver(root *bt.Node, opts ...realtime.Option) *RunnerDriver {
	return &RunnerDriver{rt: realtime.NewRunner(root, realtime.Config{}, opts...)}
}

func (d *RunnerDriver) Tick() bt.Status {
	return d.rt.Step()
}

func (d *RunnerDriver) Ticks() uint64 {
	return d.rt.TickNumber()
}

// Runner exposes the wrapped runner.
func (d *RunnerDriver) Runner() *realtime.Runner {
	return d.rt
}
