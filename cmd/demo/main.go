// Command demo drives the field robot behavior tree at a fixed tick rate.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/comalice/behaviortree/internal/primitives"
	"github.com/comalice/behaviortree/internal/production"
	"github.com/comalice/behaviortree/realtime"
)

//go:embed robot.yaml
var defaultTree []byte

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %+v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	treeCfg, err := loadTree(cfg.Tree.File)
	if err != nil {
		return err
	}

	robot := newRobot(cfg.Robot, out, logger)
	reg, err := robot.registry()
	if err != nil {
		return err
	}
	tree, err := primitives.Build(treeCfg, reg, robot.bb)
	if err != nil {
		return err
	}

	promReg := prometheus.NewRegistry()
	metrics, err := realtime.NewMetrics("demo", promReg)
	if err != nil {
		return err
	}

	runner := realtime.NewRunner(tree.Root, cfg.Runner,
		realtime.WithLogger(logger),
		realtime.WithMetrics(metrics),
		realtime.WithPublisher(&console{r: robot, drainAfter: cfg.Robot.DrainAfter, drainTo: cfg.Robot.DrainTo}),
	)
	logger.Info("tree loaded",
		zap.String("tree", tree.ID),
		zap.String("version", tree.Version),
		zap.Int("nodes", len(tree.Nodes)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(out, "=== Robot Demo ===")
	if err := runner.Start(ctx); err != nil {
		return err
	}
	select {
	case <-runner.Done():
	case <-ctx.Done():
		fmt.Fprintln(out, "\nShutting down gracefully...")
	}
	if err := runner.Stop(); err != nil {
		return err
	}

	logger.Info("demo finished",
		zap.Uint64("ticks", runner.TickNumber()),
		zap.Stringer("status", runner.LastStatus()),
		zap.Int("battery", robot.battery()),
	)
	logMetrics(logger, promReg)

	viz := &production.DefaultVisualizer{}
	if cfg.Output.DOT {
		fmt.Fprintln(out, "DOT:\n"+viz.ExportDOT(tree.Root))
	}
	if cfg.Output.JSON {
		data, err := viz.ExportJSON(tree.Root)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	}
	return nil
}

func loadTree(path string) (primitives.TreeConfig, error) {
	if path == "" {
		return primitives.LoadTreeYAML(defaultTree)
	}
	return primitives.LoadTreeFile(path)
}

func newLogger(cfg logConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log.level %q", cfg.Level)
	}
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

func logMetrics(logger *zap.Logger, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		logger.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("metric", mf.GetName())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				fields = append(fields,
					zap.Uint64("count", m.GetHistogram().GetSampleCount()),
					zap.Float64("sum", m.GetHistogram().GetSampleSum()))
			}
			logger.Debug("metric", fields...)
		}
	}
}
