package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "github.com/comalice/behaviortree"
)

func TestBuildsTree(t *testing.T) {
	entered, exited := 0, 0
	work := With(
		Sequence("work",
			Condition("ok", func(*bt.Node) bt.Status { return bt.Success }),
			Action("do", func(n *bt.Node) bt.Status {
				if v, _ := bt.UserDataAs[int](n); v == 7 {
					return bt.Success
				}
				return bt.Failure
			}, UserData(7), TimeAnchor(12)),
		),
		OnEnter(func(*bt.Node) { entered++ }),
		OnExit(func(*bt.Node) { exited++ }),
	)
	root := Selector("root", Inverter("never", Action("fail", func(*bt.Node) bt.Status { return bt.Success })), work)

	require.Equal(t, bt.Success, bt.Tick(root))
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, exited)

	assert.Equal(t, "root", root.Name)
	assert.Equal(t, bt.Inverter, root.Children[0].Kind)
	assert.Equal(t, uint32(12), work.Children[1].TimeAnchor)
	assert.Equal(t, bt.Condition, work.Children[0].Kind)
	assert.Equal(t, bt.Failure, root.Children[0].Status())
}
