package primitives

import (
	"sort"

	"github.com/cockroachdb/errors"

	bt "github.com/comalice/behaviortree"
)

// Registry maps the callback names used in tree descriptions to functions.
type Registry struct {
	leaves map[string]bt.TickFunc
	hooks  map[string]bt.HookFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		leaves: make(map[string]bt.TickFunc),
		hooks:  make(map[string]bt.HookFunc),
	}
}

// RegisterLeaf binds name to a leaf callback.
func (r *Registry) RegisterLeaf(name string, fn bt.TickFunc) error {
	if name == "" || fn == nil {
		return errors.Newf("leaf registration needs a name and a function (name %q)", name)
	}
	if _, exists := r.leaves[name]; exists {
		return errors.Wrapf(ErrDuplicateCallback, "leaf %q", name)
	}
	r.leaves[name] = fn
	return nil
}

// RegisterHook binds name to a lifecycle hook.
func (r *Registry) RegisterHook(name string, fn bt.HookFunc) error {
	if name == "" || fn == nil {
		return errors.Newf("hook registration needs a name and a function (name %q)", name)
	}
	if _, exists := r.hooks[name]; exists {
		return errors.Wrapf(ErrDuplicateCallback, "hook %q", name)
	}
	r.hooks[name] = fn
	return nil
}

// Leaf looks up a leaf callback.
func (r *Registry) Leaf(name string) (bt.TickFunc, bool) {
	fn, ok := r.leaves[name]
	return fn, ok
}

// Hook looks up a lifecycle hook.
func (r *Registry) Hook(name string) (bt.HookFunc, bool) {
	fn, ok := r.hooks[name]
	return fn, ok
}

// LeafNames returns the registered leaf names, sorted.
func (r *Registry) LeafNames() []string {
	names := make([]string, 0, len(r.leaves))
	for name := range r.leaves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
