// Package primitives describes behavior trees as data and turns those
// descriptions into wired node graphs.
//
// A TreeConfig is a nested NodeConfig document, usually loaded from YAML.
// Leaf behavior and lifecycle hooks are referenced by name and resolved
// against a Registry at Build time, so the same description can be bound to
// different callbacks (production leaves, fakes in tests).
//
// Build allocates every node of a tree in one slice and never allocates
// again; ticking the result is the root package's job.
package primitives
