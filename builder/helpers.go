// Package builder offers terse constructors for hand-wired trees.
package builder

import (
	bt "github.com/comalice/behaviortree"
)

// Option configures a node after it has been initialized.
type Option func(*bt.Node)

func build(kind bt.Kind, name string, tick bt.TickFunc, children []*bt.Node, opts []Option) *bt.Node {
	n := bt.New(kind, tick, children, nil)
	n.Name = name
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Action creates an action leaf.
func Action(name string, tick bt.TickFunc, opts ...Option) *bt.Node {
	return build(bt.Action, name, tick, nil, opts)
}

// Condition creates a condition leaf.
func Condition(name string, tick bt.TickFunc, opts ...Option) *bt.Node {
	return build(bt.Condition, name, tick, nil, opts)
}

// Sequence creates a sequence over children, in order.
func Sequence(name string, children ...*bt.Node) *bt.Node {
	return build(bt.Sequence, name, nil, children, nil)
}

// Selector creates a selector over children, in order.
func Selector(name string, children ...*bt.Node) *bt.Node {
	return build(bt.Selector, name, nil, children, nil)
}

// Inverter creates an inverter over child.
func Inverter(name string, child *bt.Node) *bt.Node {
	return build(bt.Inverter, name, nil, []*bt.Node{child}, nil)
}

// With applies opts to n and returns it, for composites built with Sequence,
// Selector or Inverter.
func With(n *bt.Node, opts ...Option) *bt.Node {
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OnEnter sets the enter hook.
func OnEnter(h bt.HookFunc) Option {
	return func(n *bt.Node) { n.OnEnter = h }
}

// OnExit sets the exit hook.
func OnExit(h bt.HookFunc) Option {
	return func(n *bt.Node) { n.OnExit = h }
}

// UserData sets the node's private data.
func UserData(v any) Option {
	return func(n *bt.Node) { n.UserData = v }
}

// TimeAnchor seeds the node's time anchor.
func TimeAnchor(t uint32) Option {
	return func(n *bt.Node) { n.TimeAnchor = t }
}
