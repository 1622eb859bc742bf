package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "github.com/comalice/behaviortree"
)

type robot struct {
	battery  int
	progress int
	resets   int
	charged  int
}

func robotRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.RegisterLeaf("battery_above", func(n *bt.Node) bt.Status {
		r, ok := bt.BlackboardAs[*robot](n)
		th, found := DataInt(n, "threshold")
		if !ok || !found {
			return bt.Error
		}
		if r.battery > th {
			return bt.Success
		}
		return bt.Failure
	}))
	require.NoError(t, reg.RegisterLeaf("collect", func(n *bt.Node) bt.Status {
		r, _ := bt.BlackboardAs[*robot](n)
		r.progress++
		if r.progress < 3 {
			return bt.Running
		}
		return bt.Success
	}))
	require.NoError(t, reg.RegisterLeaf("recharge", func(n *bt.Node) bt.Status {
		r, _ := bt.BlackboardAs[*robot](n)
		r.charged++
		r.battery = 100
		return bt.Success
	}))
	require.NoError(t, reg.RegisterHook("reset_progress", func(n *bt.Node) {
		r, _ := bt.BlackboardAs[*robot](n)
		r.progress = 0
		r.resets++
	}))
	return reg
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	noop := func(*bt.Node) bt.Status { return bt.Success }

	require.NoError(t, reg.RegisterLeaf("b", noop))
	require.NoError(t, reg.RegisterLeaf("a", noop))
	assert.ErrorIs(t, reg.RegisterLeaf("a", noop), ErrDuplicateCallback)
	assert.Error(t, reg.RegisterLeaf("", noop))
	assert.Error(t, reg.RegisterLeaf("nil", nil))
	assert.Equal(t, []string{"a", "b"}, reg.LeafNames())

	require.NoError(t, reg.RegisterHook("h", func(*bt.Node) {}))
	assert.ErrorIs(t, reg.RegisterHook("h", func(*bt.Node) {}), ErrDuplicateCallback)

	_, ok := reg.Leaf("a")
	assert.True(t, ok)
	_, ok = reg.Hook("missing")
	assert.False(t, ok)
}

func TestBuildAndTick(t *testing.T) {
	cfg, err := LoadTreeYAML([]byte(robotYAML))
	require.NoError(t, err)

	state := &robot{battery: 35}
	tree, err := Build(cfg, robotRegistry(t), state)
	require.NoError(t, err)

	assert.Equal(t, "robot", tree.ID)
	assert.Equal(t, Fingerprint(&cfg), tree.Version)
	assert.Len(t, tree.Nodes, 5)
	assert.Equal(t, "root", tree.Root.Name)
	assert.Same(t, tree.Root, tree.Node("root"))

	bt.Walk(tree.Root, func(n *bt.Node, _ int) bool {
		assert.Same(t, state, n.Blackboard, n.Name)
		assert.Equal(t, bt.Failure, n.Status(), n.Name)
		return true
	})

	assert.Equal(t, bt.Running, bt.Tick(tree.Root))
	assert.Equal(t, bt.Running, bt.Tick(tree.Root))
	assert.Equal(t, bt.Success, bt.Tick(tree.Root))
	assert.Equal(t, 1, state.resets)
	assert.Equal(t, 0, state.charged)
	assert.Equal(t, 2, tree.Node("work").CurrentChild())

	// Low battery falls back to recharge.
	state.battery = 10
	assert.Equal(t, bt.Success, bt.Tick(tree.Root))
	assert.Equal(t, 1, state.charged)
	assert.Equal(t, bt.Failure, tree.Node("work").Status())
	assert.Equal(t, 2, state.resets)
}

func TestBuildUnknownCallbacks(t *testing.T) {
	cfg, err := LoadTreeYAML([]byte(robotYAML))
	require.NoError(t, err)

	_, err = Build(cfg, NewRegistry(), nil)
	assert.ErrorIs(t, err, ErrUnknownCallback)

	reg := robotRegistry(t)
	work, _ := cfg.FindNode("work")
	work.Exit = "log_exit"
	_, err = Build(cfg, reg, nil)
	assert.ErrorIs(t, err, ErrUnknownCallback)
	assert.Contains(t, err.Error(), "log_exit")
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, err := Build(TreeConfig{ID: "t"}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestBuildCompositeWithoutHooks(t *testing.T) {
	cfg := TreeConfig{
		ID: "inv",
		Root: NewNodeConfig("not", bt.Inverter).WithChildren(
			NewLeafConfig("fail", bt.Condition, "fail"),
		),
	}
	reg := NewRegistry()
	require.NoError(t, reg.RegisterLeaf("fail", func(*bt.Node) bt.Status { return bt.Failure }))

	tree, err := Build(cfg, reg, nil)
	require.NoError(t, err)
	assert.Nil(t, tree.Root.OnEnter)
	assert.Nil(t, tree.Root.UserData)
	assert.Equal(t, bt.Success, bt.Tick(tree.Root))
}

func TestDataInt(t *testing.T) {
	n := bt.New(bt.Action, nil, nil, map[string]any{"a": 3, "b": 4.0, "c": 4.5, "d": "x", "e": int64(7)})
	v, ok := DataInt(n, "a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	v, ok = DataInt(n, "b")
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	v, ok = DataInt(n, "e")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	_, ok = DataInt(n, "c")
	assert.False(t, ok)
	_, ok = DataInt(n, "d")
	assert.False(t, ok)
	_, ok = DataInt(bt.New(bt.Action, nil, nil, nil), "a")
	assert.False(t, ok)
}

func TestBuildGivesEachTreePrivateData(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterLeaf("bump", func(n *bt.Node) bt.Status {
		data, _ := bt.UserDataAs[map[string]any](n)
		data["k"] = data["k"].(int) + 1
		data["nested"].(map[string]any)["hits"] = 1
		return bt.Success
	}))
	cfg := TreeConfig{
		ID: "counter",
		Root: NewLeafConfig("bump", bt.Action, "bump").
			WithData("k", 1).
			WithData("nested", map[string]any{"hits": 0}),
	}
	before := Fingerprint(&cfg)

	first, err := Build(cfg, reg, nil)
	require.NoError(t, err)
	second, err := Build(cfg, reg, nil)
	require.NoError(t, err)

	require.Equal(t, bt.Success, bt.Tick(first.Root))

	k, _ := DataInt(first.Root, "k")
	assert.Equal(t, 2, k)
	k, _ = DataInt(second.Root, "k")
	assert.Equal(t, 1, k, "ticking one tree leaves the other untouched")
	nested := second.Root.UserData.(map[string]any)["nested"].(map[string]any)
	assert.Equal(t, 0, nested["hits"])

	assert.Equal(t, 1, cfg.Root.Data["k"])
	assert.Equal(t, before, Fingerprint(&cfg), "the config is not mutated through built nodes")
}
