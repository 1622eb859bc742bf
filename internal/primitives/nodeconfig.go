package primitives

import (
	"github.com/cockroachdb/errors"

	bt "github.com/comalice/behaviortree"
)

// NodeConfig describes one node and, recursively, its children.
type NodeConfig struct {
	ID       string         `json:"id" yaml:"id"`
	Kind     bt.Kind        `json:"kind" yaml:"kind"`
	Leaf     string         `json:"leaf,omitempty" yaml:"leaf,omitempty"`   // registered TickFunc, leaves only
	Enter    string         `json:"enter,omitempty" yaml:"enter,omitempty"` // registered HookFunc
	Exit     string         `json:"exit,omitempty" yaml:"exit,omitempty"`   // registered HookFunc
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`   // becomes the node's UserData
	Children []*NodeConfig  `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewNodeConfig creates a NodeConfig with ID and Kind.
func NewNodeConfig(id string, kind bt.Kind) *NodeConfig {
	return &NodeConfig{ID: id, Kind: kind}
}

// NewLeafConfig creates an Action or Condition bound to the named callback.
func NewLeafConfig(id string, kind bt.Kind, leaf string) *NodeConfig {
	return &NodeConfig{ID: id, Kind: kind, Leaf: leaf}
}

// WithChildren appends children.
func (c *NodeConfig) WithChildren(children ...*NodeConfig) *NodeConfig {
	c.Children = append(c.Children, children...)
	return c
}

// WithHooks sets the enter and exit hook names. Empty names leave a hook unset.
func (c *NodeConfig) WithHooks(enter, exit string) *NodeConfig {
	c.Enter = enter
	c.Exit = exit
	return c
}

// WithData sets one UserData entry.
func (c *NodeConfig) WithData(key string, value any) *NodeConfig {
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	c.Data[key] = value
	return c
}

// Validate checks this node in isolation:
// - non-empty ID and a known kind
// - leaves name a callback and have no children
// - composites and decorators name no callback
// - an inverter has exactly one child
// - no nil children
func (c *NodeConfig) Validate() error {
	if c.ID == "" {
		return errors.Wrap(ErrInvalidTree, "node ID is required")
	}
	if !c.Kind.Valid() {
		return errors.Wrapf(ErrInvalidTree, "node %q: unknown kind %s", c.ID, c.Kind)
	}
	for i, child := range c.Children {
		if child == nil {
			return errors.Wrapf(ErrInvalidTree, "node %q: child %d is empty", c.ID, i)
		}
	}
	switch {
	case c.Kind.IsLeaf():
		if c.Leaf == "" {
			return errors.Wrapf(ErrInvalidTree, "%s %q: leaf callback is required", c.Kind, c.ID)
		}
		if len(c.Children) > 0 {
			return errors.Wrapf(ErrInvalidTree, "%s %q: leaves cannot have children", c.Kind, c.ID)
		}
	case c.Leaf != "":
		return errors.Wrapf(ErrInvalidTree, "%s %q: only leaves take a leaf callback", c.Kind, c.ID)
	case c.Kind == bt.Inverter && len(c.Children) != 1:
		return errors.Wrapf(ErrInvalidTree, "inverter %q: needs exactly one child, has %d", c.ID, len(c.Children))
	}
	return nil
}

// count returns the number of nodes in the subtree rooted at c.
func (c *NodeConfig) count() int {
	n := 1
	for _, child := range c.Children {
		n += child.count()
	}
	return n
}
