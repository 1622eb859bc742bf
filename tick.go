package behaviortree

// Tick evaluates root once and returns its outcome. A nil root yields Error
// and touches nothing.
//
// A panic raised by a callback or hook propagates out of Tick. On the way out
// every node on the panicking path is set to Error, and composites and
// inverters fire their exit hook, so the aborted run is closed and the next
// tick starts a new one.
func Tick(root *Node) Status {
	if root == nil {
		return Error
	}
	return dispatch(root)
}

// dispatch is the only recursive entry point; composites call it for every
// child instead of evaluating subtrees themselves.
func dispatch(n *Node) Status {
	switch n.Kind {
	case Action, Condition:
		return tickLeaf(n)
	case Sequence:
		// Success moves on to the next child.
		return tickComposite(n, Success)
	case Selector:
		// Failure moves on to the next child.
		return tickComposite(n, Failure)
	case Inverter:
		return tickInverter(n)
	default:
		n.status = Error
		return Error
	}
}

func tickLeaf(n *Node) Status {
	defer failLeafOnPanic(n)
	if n.Tick == nil {
		n.status = Error
		return Error
	}
	result := n.Tick(n)
	if !result.Valid() {
		result = Error
	}
	n.status = result
	return result
}

// tickComposite runs Sequence and Selector. A child returning next advances
// the cursor; any other outcome stops iteration at that child and becomes the
// composite's outcome. Running out of children yields next.
func tickComposite(n *Node, next Status) Status {
	closed := false
	defer abortOnPanic(n, &closed)
	if n.status != Running {
		n.currentChild = 0
		enter(n)
	}
	for n.currentChild < len(n.Children) {
		child := n.Children[n.currentChild]
		if child == nil {
			return finish(n, Error, &closed)
		}
		cs := dispatch(child)
		if cs != next {
			return finish(n, cs, &closed)
		}
		n.currentChild++
	}
	return finish(n, next, &closed)
}

func tickInverter(n *Node) Status {
	if len(n.Children) != 1 {
		n.status = Error
		return Error
	}
	closed := false
	defer abortOnPanic(n, &closed)
	if n.status != Running {
		enter(n)
	}
	child := n.Children[0]
	if child == nil {
		return finish(n, Error, &closed)
	}
	switch cs := dispatch(child); cs {
	case Success:
		return finish(n, Failure, &closed)
	case Failure:
		return finish(n, Success, &closed)
	default:
		return finish(n, cs, &closed)
	}
}

// finish records the outcome and fires the exit hook on terminal outcomes.
// closed is set once the exit hook has been invoked.
func finish(n *Node, result Status, closed *bool) Status {
	n.status = result
	if result.IsTerminal() {
		*closed = true
		exit(n)
	}
	return result
}

// abortOnPanic closes n's run with Error and re-raises the panic. The exit
// hook is skipped if it already ran, which is the case when it panicked.
func abortOnPanic(n *Node, closed *bool) {
	if p := recover(); p != nil {
		n.status = Error
		if !*closed {
			exit(n)
		}
		panic(p)
	}
}

func failLeafOnPanic(n *Node) {
	if p := recover(); p != nil {
		n.status = Error
		panic(p)
	}
}

func enter(n *Node) {
	if n.OnEnter != nil {
		n.OnEnter(n)
	}
}

func exit(n *Node) {
	if n.OnExit != nil {
		n.OnExit(n)
	}
}
