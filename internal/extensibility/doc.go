// Package extensibility holds reusable leaf callbacks and wrappers: logging,
// panic recovery, predicate and blackboard-expression conditions, and an
// adapter for github.com/joeycumines/go-behaviortree nodes.
package extensibility
