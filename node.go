// Package behaviortree is a statically allocated behavior tree interpreter.
//
// The caller owns every node and wires the tree by hand. A single call to
// Tick performs one synchronous, depth-first, left-to-right pass over the
// tree and returns one of four outcomes. Long-running work is expressed by
// returning Running; the next Tick resumes composites at the child that was
// running, using the per-node cursor.
//
// The engine never allocates, copies or frees nodes, and it never interprets
// UserData or Blackboard. A tree must not be ticked from more than one
// goroutine at a time; see the realtime package for a serialized runner.
package behaviortree

import "fmt"

// Kind selects how the dispatcher evaluates a node.
type Kind uint8

const (
	Action Kind = iota
	Condition
	Sequence
	Selector
	Inverter

	kindCount
)

var kindNames = [kindCount]string{
	Action:    "action",
	Condition: "condition",
	Sequence:  "sequence",
	Selector:  "selector",
	Inverter:  "inverter",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k belongs to the closed set of node kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// IsLeaf reports whether k is evaluated through a tick callback.
func (k Kind) IsLeaf() bool {
	return k == Action || k == Condition
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return kindCount, fmt.Errorf("unknown node kind %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// TickFunc is the behavior of an Action or Condition. It must return
// Success, Failure or Running.
type TickFunc func(n *Node) Status

// HookFunc is a lifecycle hook of a composite or decorator.
type HookFunc func(n *Node)

// Node is a single behavior tree node. Exported fields are set by the caller
// before the first tick; status and cursor belong to the dispatcher.
//
// Nodes must be set up with Init or New. The zero Status is Success, so a
// Node built as a bare struct literal reports Success instead of Failure
// until it is first ticked.
type Node struct {
	Kind Kind
	// Name is an optional label for logs and diagrams.
	Name string

	// Tick is required for Action and Condition, ignored otherwise.
	Tick TickFunc

	// Children are borrowed from the caller and must outlive the tree. A nil
	// slot is reported as Error when the dispatcher reaches it.
	Children []*Node

	// OnEnter fires when a composite or decorator starts a run, OnExit when
	// the run reaches a terminal outcome.
	OnEnter HookFunc
	OnExit  HookFunc

	// TimeAnchor is reserved for timing logic in callbacks. The engine never
	// reads or writes it after Init.
	TimeAnchor uint32

	UserData   any
	Blackboard any

	status       Status
	currentChild int
}

// Init (re)initializes n. The status is reset to Failure, the cursor to zero,
// hooks, name, time anchor and blackboard are cleared. Init on a nil node does
// nothing.
func Init(n *Node, kind Kind, tick TickFunc, children []*Node, userData any) {
	if n == nil {
		return
	}
	*n = Node{
		Kind:     kind,
		Tick:     tick,
		Children: children,
		UserData: userData,
		status:   Failure,
	}
}

// New allocates and initializes a node. It is a convenience for callers that
// do not need to control where nodes live.
func New(kind Kind, tick TickFunc, children []*Node, userData any) *Node {
	n := new(Node)
	Init(n, kind, tick, children, userData)
	return n
}

// Status returns the outcome recorded by the most recent tick of n.
func (n *Node) Status() Status {
	return n.status
}

// CurrentChild returns the resumption cursor of a Sequence or Selector. It is
// always within [0, len(Children)].
func (n *Node) CurrentChild() int {
	return n.currentChild
}

// ChildrenCount returns len(n.Children).
func (n *Node) ChildrenCount() int {
	return len(n.Children)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return n.Kind.String() + "(" + n.Name + ")"
	}
	return n.Kind.String()
}

// UserDataAs returns the node's private data as T.
func UserDataAs[T any](n *Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	v, ok := n.UserData.(T)
	return v, ok
}

// BlackboardAs returns the node's shared context as T.
func BlackboardAs[T any](n *Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	v, ok := n.Blackboard.(T)
	return v, ok
}

// Walk visits root and its descendants depth-first, left to right, parent
// before children. Nil slots are skipped and a node reachable through several
// parents is visited once. Returning false from fn prunes that subtree.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	seen := make(map[*Node]struct{})
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if n == nil {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(root, 0)
}

// SetBlackboard points every node reachable from root at bb.
func SetBlackboard(root *Node, bb any) {
	Walk(root, func(n *Node, _ int) bool {
		n.Blackboard = bb
		return true
	})
}
