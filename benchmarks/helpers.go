// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	bt "github.com/comalice/behaviortree"
	"github.com/comalice/behaviortree/internal/primitives"
)

// Leaf names registered by Registry.
const (
	LeafSuccess = "ok"
	LeafFailure = "fail"
	// LeafHalf alternates Running and Success, starting with Running.
	LeafHalf = "half"
)

// Registry returns the leaves referenced by the generated configs.
func Registry() *primitives.Registry {
	reg := primitives.NewRegistry()
	must(reg.RegisterLeaf(LeafSuccess, func(*bt.Node) bt.Status { return bt.Success }))
	must(reg.RegisterLeaf(LeafFailure, func(*bt.Node) bt.Status { return bt.Failure }))
	must(reg.RegisterLeaf(LeafHalf, func(n *bt.Node) bt.Status {
		n.TimeAnchor++
		if n.TimeAnchor%2 == 1 {
			return bt.Running
		}
		return bt.Success
	}))
	return reg
}

// GenWideSequence creates a sequence of n succeeding actions.
func GenWideSequence(n int) primitives.TreeConfig {
	if n < 1 {
		n = 1
	}
	root := primitives.NewNodeConfig("root", bt.Sequence)
	for i := 0; i < n; i++ {
		root.WithChildren(primitives.NewLeafConfig(fmt.Sprintf("a%d", i), bt.Action, LeafSuccess))
	}
	return primitives.TreeConfig{ID: fmt.Sprintf("wide_%d", n), Root: root}
}

// GenFallbackSelector creates a selector whose first n-1 children fail and
// whose last child succeeds, so every tick visits all n.
func GenFallbackSelector(n int) primitives.TreeConfig {
	if n < 1 {
		n = 1
	}
	root := primitives.NewNodeConfig("root", bt.Selector)
	for i := 0; i < n-1; i++ {
		root.WithChildren(primitives.NewLeafConfig(fmt.Sprintf("f%d", i), bt.Condition, LeafFailure))
	}
	root.WithChildren(primitives.NewLeafConfig("last", bt.Action, LeafSuccess))
	return primitives.TreeConfig{ID: fmt.Sprintf("fallback_%d", n), Root: root}
}

// GenDeepChain nests depth sequences, alternating with inverter pairs, above a
// single leaf.
func GenDeepChain(depth int, leaf string) primitives.TreeConfig {
	if depth < 1 {
		depth = 1
	}
	node := primitives.NewLeafConfig("leaf", bt.Action, leaf)
	for i := depth - 1; i >= 0; i-- {
		if i%2 == 0 {
			node = primitives.NewNodeConfig(fmt.Sprintf("s%d", i), bt.Sequence).WithChildren(node)
			continue
		}
		inner := primitives.NewNodeConfig(fmt.Sprintf("i%d_b", i), bt.Inverter).WithChildren(node)
		node = primitives.NewNodeConfig(fmt.Sprintf("i%d_a", i), bt.Inverter).WithChildren(inner)
	}
	return primitives.TreeConfig{ID: fmt.Sprintf("deep_%d", depth), Root: node}
}

// MustBuild builds cfg against Registry and panics on error.
func MustBuild(cfg primitives.TreeConfig) *primitives.Tree {
	tree, err := primitives.Build(cfg, Registry(), nil)
	if err != nil {
		panic(err)
	}
	return tree
}

// GenTreeYAML returns the YAML encoding of GenWideSequence(n).
func GenTreeYAML(n int) []byte {
	data, err := GenWideSequence(n).EncodeYAML()
	if err != nil {
		panic(err)
	}
	return data
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
