package primitives

import (
	"bytes"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// TreeConfig is a complete tree description.
type TreeConfig struct {
	Version string      `json:"version,omitempty" yaml:"version,omitempty"`
	ID      string      `json:"id" yaml:"id"`
	Root    *NodeConfig `json:"root" yaml:"root"`
}

// Validate validates the whole tree:
// - non-empty ID and a root
// - every node validates
// - node IDs are unique across the tree
func (t *TreeConfig) Validate() error {
	if t.ID == "" {
		return errors.Wrap(ErrInvalidTree, "tree ID is required")
	}
	if t.Root == nil {
		return errors.Wrapf(ErrInvalidTree, "tree %q: root is required", t.ID)
	}
	seen := make(map[string]struct{})
	var walk func(c *NodeConfig) error
	walk = func(c *NodeConfig) error {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return errors.Wrapf(ErrDuplicateID, "node %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		for _, child := range c.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.Root); err != nil {
		return errors.Wrapf(err, "tree %q", t.ID)
	}
	return nil
}

// FindNode returns the node config with the given ID.
func (t *TreeConfig) FindNode(id string) (*NodeConfig, bool) {
	var find func(c *NodeConfig) *NodeConfig
	find = func(c *NodeConfig) *NodeConfig {
		if c == nil {
			return nil
		}
		if c.ID == id {
			return c
		}
		for _, child := range c.Children {
			if found := find(child); found != nil {
				return found
			}
		}
		return nil
	}
	found := find(t.Root)
	return found, found != nil
}

// LoadTreeYAML decodes and validates a YAML tree description. Unknown fields
// are rejected.
func LoadTreeYAML(data []byte) (TreeConfig, error) {
	var cfg TreeConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return TreeConfig{}, errors.Wrap(err, "yaml decode tree")
	}
	if err := cfg.Validate(); err != nil {
		return TreeConfig{}, err
	}
	return cfg, nil
}

// LoadTreeFile reads a YAML tree description from path.
func LoadTreeFile(path string) (TreeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TreeConfig{}, errors.Wrapf(err, "read %s", path)
	}
	cfg, err := LoadTreeYAML(data)
	if err != nil {
		return TreeConfig{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

// EncodeYAML encodes t as a YAML document that LoadTreeYAML accepts.
func (t TreeConfig) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "yaml encode tree")
	}
	return data, nil
}
