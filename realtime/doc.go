// Package realtime drives a behavior tree at a fixed tick rate.
//
// The interpreter in the root package performs exactly one pass per call and
// has no notion of time; resuming a Running tree is the caller's job. Runner
// is that caller: it owns a ticker goroutine, calls behaviortree.Tick on the
// root once per period and serializes every tick behind a mutex, so a tree
// driven by a Runner is never ticked concurrently.
//
// # Example Usage
//
//	rt := realtime.NewRunner(root, realtime.Config{
//		TickRate:       50 * time.Millisecond,
//		StopOnTerminal: true,
//	}, realtime.WithLogger(logger))
//	if err := rt.Start(ctx); err != nil {
//		return err
//	}
//	<-rt.Done()
//	fmt.Println(rt.LastStatus())
//
// # Tick Pipeline
//
// Each tick runs the same phases in order:
//  1. Tick the root (panics in callbacks are recovered and reported as Error)
//  2. Record the tick number and last status
//  3. Observe metrics (ticks by status, tick duration, panics)
//  4. Publish a TickRecord to the configured Publisher, if any
//  5. Log the outcome
//
// Step runs the pipeline synchronously without the ticker, which is what
// tests and single-shot tools use.
//
// # Stopping
//
// The loop ends when the context passed to Start is cancelled, when Stop is
// called, after MaxTicks ticks, or on the first terminal outcome when
// StopOnTerminal is set. A Runner is started at most once.
package realtime
