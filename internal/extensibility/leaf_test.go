package extensibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	bt "github.com/comalice/behaviortree"
	"github.com/comalice/behaviortree/testutil"
)

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	leaf := testutil.Scripted(bt.Error, bt.Running)
	n := bt.New(bt.Action, Logging("collect", leaf.Func(), zap.New(core)), nil, nil)

	assert.Equal(t, bt.Running, bt.Tick(n))
	assert.Equal(t, bt.Error, bt.Tick(n))
	assert.Equal(t, 2, leaf.Calls)

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "leaf ticked", entries[0].Message)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "collect", entries[0].ContextMap()["leaf"])
		assert.Equal(t, "running", entries[0].ContextMap()["status"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	}
}

func TestLoggingNilInputs(t *testing.T) {
	n := bt.New(bt.Action, Logging("x", nil, nil), nil, nil)
	assert.Equal(t, bt.Error, bt.Tick(n))
}

func TestRecover(t *testing.T) {
	var got any
	fn := Recover(func(*bt.Node) bt.Status { panic("boom") }, func(_ *bt.Node, v any) { got = v })
	n := bt.New(bt.Action, fn, nil, nil)
	assert.Equal(t, bt.Error, bt.Tick(n))
	assert.Equal(t, "boom", got)
	assert.Equal(t, bt.Error, n.Status())

	ok := bt.New(bt.Action, Recover(testutil.Returning(bt.Success).Func()), nil, nil)
	assert.Equal(t, bt.Success, bt.Tick(ok))
	assert.Equal(t, bt.Error, Recover(nil)(ok))
}

func TestRecoverKeepsSiblingsAlive(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bad := bt.New(bt.Action, Recover(func(*bt.Node) bt.Status { panic("sensor") }, PanicLogger(zap.New(core))), nil, nil)
	fallback := testutil.Returning(bt.Success)
	root := testutil.Composite(bt.Selector, "root", bad, fallback.Node("fallback"))

	assert.Equal(t, bt.Error, bt.Tick(root), "error stops a selector")
	assert.Zero(t, fallback.Calls)
	assert.Equal(t, 1, logs.FilterMessage("leaf panicked").Len())
}

func TestCondition(t *testing.T) {
	armed := false
	n := bt.New(bt.Condition, Condition(func(*bt.Node) bool { return armed }), nil, nil)
	assert.Equal(t, bt.Failure, bt.Tick(n))
	armed = true
	assert.Equal(t, bt.Success, bt.Tick(n))

	assert.Equal(t, bt.Error, bt.Tick(bt.New(bt.Condition, Condition(nil), nil, nil)))
}
