// Package testutil provides fixtures shared by the behavior tree test suites.
// All state lives in the fixture values; nothing here is global.
package testutil

import (
	bt "github.com/comalice/behaviortree"
)

// Leaf is a scripted leaf callback. Each tick returns the next entry of
// Script; once the script is exhausted it keeps returning Then.
type Leaf struct {
	Script []bt.Status
	Then   bt.Status
	Calls  int
}

// Returning is a Leaf that always yields s.
func Returning(s bt.Status) *Leaf {
	return &Leaf{Then: s}
}

// Scripted is a Leaf that yields script in order and then `then` forever.
func Scripted(then bt.Status, script ...bt.Status) *Leaf {
	return &Leaf{Script: script, Then: then}
}

// Func returns the callback to bind to a node.
func (l *Leaf) Func() bt.TickFunc {
	return func(*bt.Node) bt.Status {
		l.Calls++
		if l.Calls <= len(l.Script) {
			return l.Script[l.Calls-1]
		}
		return l.Then
	}
}

// Node builds an Action bound to l.
func (l *Leaf) Node(name string) *bt.Node {
	n := bt.New(bt.Action, l.Func(), nil, nil)
	n.Name = name
	return n
}

// Hooks counts lifecycle hook invocations and records the node status seen by
// the exit hook.
type Hooks struct {
	Enters int
	Exits  int
	Exited []bt.Status
}

// Attach installs counting hooks on n, replacing any present.
func (h *Hooks) Attach(n *bt.Node) *bt.Node {
	n.OnEnter = func(*bt.Node) { h.Enters++ }
	n.OnExit = func(n *bt.Node) {
		h.Exits++
		h.Exited = append(h.Exited, n.Status())
	}
	return n
}

// Progress is the private state of a multi-tick action: it takes Ticks calls
// to complete, returning Running before that and Success on the last one.
type Progress struct {
	Ticks  int
	Done   int
	Resets int
	Calls  int
}

// ProgressAction builds an Action whose UserData is p.
func ProgressAction(p *Progress) *bt.Node {
	return bt.New(bt.Action, tickProgress, nil, p)
}

func tickProgress(n *bt.Node) bt.Status {
	p, ok := bt.UserDataAs[*Progress](n)
	if !ok {
		return bt.Error
	}
	p.Calls++
	p.Done++
	if p.Done < p.Ticks {
		return bt.Running
	}
	return bt.Success
}

// ResetOnEnter returns an enter hook that rewinds p. Install it on the
// composite that owns the progress action so each run starts from zero.
func ResetOnEnter(p *Progress) bt.HookFunc {
	return func(*bt.Node) {
		p.Done = 0
		p.Resets++
	}
}

// Composite builds a Sequence, Selector or Inverter over children.
func Composite(kind bt.Kind, name string, children ...*bt.Node) *bt.Node {
	n := bt.New(kind, nil, children, nil)
	n.Name = name
	return n
}
