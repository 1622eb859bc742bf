package extensibility

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	bt "github.com/comalice/behaviortree"
)

// Logging wraps fn and logs each invocation at debug level, or at warn level
// when the result is Error. A nil logger disables logging.
func Logging(name string, fn bt.TickFunc, logger *zap.Logger) bt.TickFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("leaf", name))
	return func(n *bt.Node) bt.Status {
		start := time.Now()
		status := bt.Error
		if fn != nil {
			status = fn(n)
		}
		fields := []zap.Field{
			zap.Stringer("status", status),
			zap.Duration("took", time.Since(start)),
		}
		if status == bt.Error {
			logger.Warn("leaf failed", fields...)
		} else {
			logger.Debug("leaf ticked", fields...)
		}
		return status
	}
}

// Recover wraps fn so that a panic becomes an Error result. onPanic, if set,
// receives the recovered value.
func Recover(fn bt.TickFunc, onPanic ...func(n *bt.Node, v any)) bt.TickFunc {
	return func(n *bt.Node) (status bt.Status) {
		defer func() {
			if v := recover(); v != nil {
				status = bt.Error
				for _, h := range onPanic {
					h(n, v)
				}
			}
		}()
		if fn == nil {
			return bt.Error
		}
		return fn(n)
	}
}

// Condition turns a predicate into a Condition callback: true is Success,
// false is Failure.
func Condition(pred func(n *bt.Node) bool) bt.TickFunc {
	return func(n *bt.Node) bt.Status {
		if pred == nil {
			return bt.Error
		}
		if pred(n) {
			return bt.Success
		}
		return bt.Failure
	}
}

// PanicLogger returns an onPanic handler for Recover that logs through logger.
func PanicLogger(logger *zap.Logger) func(*bt.Node, any) {
	return func(n *bt.Node, v any) {
		logger.Error("leaf panicked", zap.Stringer("node", n), zap.String("panic", fmt.Sprint(v)))
	}
}
