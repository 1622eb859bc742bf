package primitives

import (
	"github.com/cockroachdb/errors"

	bt "github.com/comalice/behaviortree"
)

// Tree is a built node graph. Nodes indexes every node by its config ID.
type Tree struct {
	ID      string
	Version string
	Root    *bt.Node
	Nodes   map[string]*bt.Node
}

// Build validates cfg and wires a node graph whose callbacks are resolved
// from reg. All nodes live in a single backing slice. Every node gets
// blackboard as its shared context.
func Build(cfg TreeConfig, reg *Registry, blackboard any) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}

	arena := make([]bt.Node, cfg.Root.count())
	tree := &Tree{
		ID:      cfg.ID,
		Version: Fingerprint(&cfg),
		Nodes:   make(map[string]*bt.Node, len(arena)),
	}

	next := 0
	var build func(c *NodeConfig) (*bt.Node, error)
	build = func(c *NodeConfig) (*bt.Node, error) {
		n := &arena[next]
		next++

		var tick bt.TickFunc
		if c.Kind.IsLeaf() {
			fn, ok := reg.Leaf(c.Leaf)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownCallback, "node %q: leaf %q", c.ID, c.Leaf)
			}
			tick = fn
		}

		var children []*bt.Node
		if len(c.Children) > 0 {
			children = make([]*bt.Node, len(c.Children))
			for i, cc := range c.Children {
				child, err := build(cc)
				if err != nil {
					return nil, err
				}
				children[i] = child
			}
		}

		var data any
		if c.Data != nil {
			data = cloneData(c.Data)
		}
		bt.Init(n, c.Kind, tick, children, data)
		n.Name = c.ID
		n.Blackboard = blackboard

		if c.Enter != "" {
			fn, ok := reg.Hook(c.Enter)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownCallback, "node %q: enter hook %q", c.ID, c.Enter)
			}
			n.OnEnter = fn
		}
		if c.Exit != "" {
			fn, ok := reg.Hook(c.Exit)
			if !ok {
				return nil, errors.Wrapf(ErrUnknownCallback, "node %q: exit hook %q", c.ID, c.Exit)
			}
			n.OnExit = fn
		}

		tree.Nodes[c.ID] = n
		return n, nil
	}

	root, err := build(cfg.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "build tree %q", cfg.ID)
	}
	tree.Root = root
	return tree, nil
}

// cloneData deep-copies the maps and slices a YAML or JSON decoder produces,
// so every built node owns its UserData.
func cloneData(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneData(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Node returns the built node with the given config ID.
func (t *Tree) Node(id string) *bt.Node {
	return t.Nodes[id]
}

// DataInt reads an integer entry of a config-built node's UserData. YAML
// numbers decode as int; float64 values without a fraction are accepted too.
func DataInt(n *bt.Node, key string) (int, bool) {
	data, ok := bt.UserDataAs[map[string]any](n)
	if !ok {
		return 0, false
	}
	switch v := data[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}
