package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	bt "github.com/comalice/behaviortree"
)

// ErrCycle is returned when a node is its own ancestor.
var ErrCycle = errors.New("tree contains a cycle")

// DefaultVisualizer renders a node graph together with its last statuses.
type DefaultVisualizer struct{}

var statusColors = map[bt.Status]string{
	bt.Success: "lightgreen",
	bt.Failure: "lightcoral",
	bt.Running: "gold",
	bt.Error:   "red",
}

var kindShapes = map[bt.Kind]string{
	bt.Action:    "box",
	bt.Condition: "ellipse",
	bt.Sequence:  "cds",
	bt.Selector:  "diamond",
	bt.Inverter:  "invtriangle",
}

// ExportDOT generates Graphviz DOT source for the tree rooted at root. Edges
// are labelled with the child index; the edge at a running composite's cursor
// is drawn bold.
func (v *DefaultVisualizer) ExportDOT(root *bt.Node) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph BehaviorTree {
  rankdir=TB;
  node [fontsize=10, style=filled, fillcolor=white];
  edge [fontsize=9];
`)

	ids := make(map[*bt.Node]string)
	var order []*bt.Node
	bt.Walk(root, func(n *bt.Node, _ int) bool {
		ids[n] = fmt.Sprintf("n%d", len(order))
		order = append(order, n)
		return true
	})

	for _, n := range order {
		fmt.Fprintf(&buf, "  %s [label=\"%s\" shape=%s fillcolor=%s];\n",
			ids[n], escape(nodeLabel(n)), shapeOf(n.Kind), colorOf(n.Status()))
	}

	missing := 0
	for _, n := range order {
		for i, child := range n.Children {
			target, ok := ids[child]
			if !ok {
				target = fmt.Sprintf("missing%d", missing)
				missing++
				fmt.Fprintf(&buf, "  %s [label=\"nil\" shape=point color=red];\n", target)
			}
			style := ""
			if n.Status() == bt.Running && isComposite(n.Kind) && n.CurrentChild() == i {
				style = " style=bold"
			}
			fmt.Fprintf(&buf, "  %s -> %s [label=\"%d\"%s];\n", ids[n], target, i, style)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// NodeSnapshot is the JSON form of a node and its subtree.
type NodeSnapshot struct {
	Name         string          `json:"name,omitempty"`
	Kind         bt.Kind         `json:"kind"`
	Status       bt.Status       `json:"status"`
	CurrentChild *int            `json:"currentChild,omitempty"`
	Children     []*NodeSnapshot `json:"children,omitempty"`
}

// Snapshot captures the tree's current statuses and cursors. Nil child slots
// appear as nil entries.
func (v *DefaultVisualizer) Snapshot(root *bt.Node) (*NodeSnapshot, error) {
	if root == nil {
		return nil, errors.New("nil root")
	}
	onPath := make(map[*bt.Node]bool)
	var snap func(n *bt.Node) (*NodeSnapshot, error)
	snap = func(n *bt.Node) (*NodeSnapshot, error) {
		if onPath[n] {
			return nil, errors.Wrapf(ErrCycle, "at %s", n)
		}
		onPath[n] = true
		defer delete(onPath, n)

		s := &NodeSnapshot{Name: n.Name, Kind: n.Kind, Status: n.Status()}
		if isComposite(n.Kind) {
			cursor := n.CurrentChild()
			s.CurrentChild = &cursor
		}
		for _, child := range n.Children {
			if child == nil {
				s.Children = append(s.Children, nil)
				continue
			}
			cs, err := snap(child)
			if err != nil {
				return nil, err
			}
			s.Children = append(s.Children, cs)
		}
		return s, nil
	}
	return snap(root)
}

// ExportJSON serializes Snapshot(root) as indented JSON.
func (v *DefaultVisualizer) ExportJSON(root *bt.Node) ([]byte, error) {
	s, err := v.Snapshot(root)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "json marshal snapshot")
	}
	return data, nil
}

func nodeLabel(n *bt.Node) string {
	label := n.Kind.String()
	if n.Name != "" {
		label = n.Name + "\n" + label
	}
	if isComposite(n.Kind) {
		label += fmt.Sprintf(" [%d/%d]", n.CurrentChild(), n.ChildrenCount())
	}
	return label + "\n" + n.Status().String()
}

func isComposite(k bt.Kind) bool {
	return k == bt.Sequence || k == bt.Selector
}

func shapeOf(k bt.Kind) string {
	if s, ok := kindShapes[k]; ok {
		return s
	}
	return "octagon"
}

func colorOf(s bt.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "gray"
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
