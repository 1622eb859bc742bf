package extensibility

import (
	gobt "github.com/joeycumines/go-behaviortree"

	bt "github.com/comalice/behaviortree"
)

// FromGoBehaviorTree runs a go-behaviortree node as a leaf. Each tick of the
// returned callback ticks node once. Running, Success and Failure map one to
// one; a tick error, an unknown status or a nil node yields Error.
//
// go-behaviortree composites are stateless and restart from their first child
// on every tick, so a whole subtree embedded this way does not resume.
func FromGoBehaviorTree(node gobt.Node) bt.TickFunc {
	return func(*bt.Node) bt.Status {
		if node == nil {
			return bt.Error
		}
		status, err := node.Tick()
		if err != nil {
			return bt.Error
		}
		switch status {
		case gobt.Running:
			return bt.Running
		case gobt.Success:
			return bt.Success
		case gobt.Failure:
			return bt.Failure
		default:
			return bt.Error
		}
	}
}
