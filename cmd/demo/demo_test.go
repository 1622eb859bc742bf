package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bt "github.com/comalice/behaviortree"
)

var quietArgs = []string{"--runner.tick_rate=1ms", "--log.level=error", "--output.dot=false"}

func TestRunReproducesRobotTrace(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(append(quietArgs, "--runner.max_ticks=13"), &out))

	mainLine := regexp.MustCompile(`\[main\] tick=(\d+) => root status=(\w+), battery=(\d+)%`)
	var got []string
	for _, m := range mainLine.FindAllStringSubmatch(out.String(), -1) {
		got = append(got, m[2]+"/"+m[3])
	}
	assert.Equal(t, []string{
		"running/34", "running/33", "running/32", "success/100",
		"running/99", "running/98", "running/97", "success/97",
		"running/96", "running/9", "running/8", "success/8",
		"success/100",
	}, got)

	text := out.String()
	assert.Contains(t, text, "[avoid] obstacle detected -> avoiding...")
	assert.Contains(t, text, "[upload] attempt #1 -> FAILURE")
	assert.Contains(t, text, "[upload] attempt #3 -> SUCCESS")
	assert.Contains(t, text, "<< exit  node sequence(pipeline) with status=failure")
	assert.Equal(t, 4, strings.Count(text, ">> work sequence enter"))
	assert.Equal(t, 3, strings.Count(text, ">> enter node sequence(pipeline)"), "low battery skips the pipeline")
}

func TestRunPrintsDOT(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--runner.tick_rate=1ms", "--runner.max_ticks=1", "--log.level=error", "--output.json"}, &out))
	assert.Contains(t, out.String(), "digraph BehaviorTree {")
	assert.Contains(t, out.String(), `"name": "collect"`)
}

func TestRunStopOnTerminal(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(append(quietArgs, "--runner.max_ticks=0", "--runner.stop_on_terminal"), &out))
	assert.Equal(t, 4, strings.Count(out.String(), "[main] tick="))
}

func TestRunTreeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
id: tiny
root:
  id: only
  kind: action
  leaf: recharge
`), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(append(quietArgs, "--runner.max_ticks=2", "--robot.battery=5", "--tree.file="+path), &out))
	assert.Equal(t, 2, strings.Count(out.String(), "[recharge] charging..."))
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"--log.level=loud"}, &out))
	assert.Error(t, run([]string{"--tree.file=/does/not/exist.yaml"}, &out))
	assert.Error(t, run([]string{"--robot.battery=101"}, &out))
	assert.Error(t, run([]string{"--runner.tick_rate=-1s"}, &out))
	assert.Error(t, run([]string{"--no-such-flag"}, &out))
}

func TestTimeAnchorReady(t *testing.T) {
	var out bytes.Buffer
	r := newRobot(robotConfig{Battery: 50}, &out, nil)
	clock := uint32(100)
	r.now = func() uint32 { return clock }

	n := bt.New(bt.Action, nil, nil, nil)
	n.Name = "collect"
	assert.True(t, r.timeAnchorReady(n), "zero anchor is always ready")

	n.TimeAnchor = 150
	assert.False(t, r.timeAnchorReady(n))
	assert.Contains(t, out.String(), "[time] action(collect) waiting until 150 ms (now 100)")

	clock = 150
	assert.True(t, r.timeAnchorReady(n))
	assert.Zero(t, n.TimeAnchor, "reached anchor is consumed")
}

func TestWarmupDelaysCollect(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(append(quietArgs, "--runner.max_ticks=3", "--robot.warmup=1h"), &out))
	assert.Equal(t, 3, strings.Count(out.String(), "[time] action(collect) waiting"))
	assert.NotContains(t, out.String(), "[collect]")
}

func TestLoadConfigPrecedence(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Runner.TickRate)
	assert.Equal(t, uint64(20), cfg.Runner.MaxTicks)
	assert.Equal(t, 35, cfg.Robot.Battery)
	assert.True(t, cfg.Robot.Obstacle)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Output.DOT)

	file := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(file, []byte("robot:\n  battery: 60\n  drain_to: 1\nrunner:\n  max_ticks: 7\n"), 0o600))
	cfg, err = loadConfig([]string{"--config", file})
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Robot.Battery)
	assert.Equal(t, 1, cfg.Robot.DrainTo)
	assert.Equal(t, uint64(7), cfg.Runner.MaxTicks)

	t.Setenv("BTDEMO_ROBOT_BATTERY", "70")
	cfg, err = loadConfig([]string{"--config", file})
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Robot.Battery, "environment beats file")

	cfg, err = loadConfig([]string{"--config", file, "--robot.battery=80"})
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Robot.Battery, "flag beats environment")
}

func TestAnchorsSkipZeroOnWrap(t *testing.T) {
	assert.Equal(t, uint32(1), nonZero(0))
	assert.Equal(t, uint32(7), nonZero(7))

	assert.Equal(t, uint32(1), anchorAfter(math.MaxUint32, time.Millisecond), "wrapping onto zero")
	assert.Equal(t, uint32(3), anchorAfter(math.MaxUint32-1, 5*time.Millisecond))
	assert.Equal(t, uint32(150), anchorAfter(100, 50*time.Millisecond))

	var out bytes.Buffer
	r := newRobot(robotConfig{Battery: 50, Warmup: time.Millisecond}, &out, nil)
	r.now = func() uint32 { return math.MaxUint32 }
	collect := bt.New(bt.Action, nil, nil, nil)
	collect.Name = "collect"
	work := bt.New(bt.Sequence, nil, []*bt.Node{collect}, nil)
	r.resetProgress(work)
	assert.Equal(t, uint32(1), collect.TimeAnchor)
}
