package main

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/comalice/behaviortree/realtime"
)

const envPrefix = "BTDEMO"

type robotConfig struct {
	Battery    int           `mapstructure:"battery"`
	Obstacle   bool          `mapstructure:"obstacle"`
	DrainAfter uint64        `mapstructure:"drain_after"` // tick after which the battery drops
	DrainTo    int           `mapstructure:"drain_to"`
	Warmup     time.Duration `mapstructure:"warmup"` // collect waits this long after each work entry
}

type logConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type treeConfig struct {
	File string `mapstructure:"file"` // empty selects the built-in tree
}

type outputConfig struct {
	DOT  bool `mapstructure:"dot"`
	JSON bool `mapstructure:"json"`
}

type demoConfig struct {
	Runner realtime.Config `mapstructure:"runner"`
	Robot  robotConfig     `mapstructure:"robot"`
	Log    logConfig       `mapstructure:"log"`
	Tree   treeConfig      `mapstructure:"tree"`
	Output outputConfig    `mapstructure:"output"`
}

// loadConfig resolves settings with the precedence flags > environment >
// config file > defaults.
func loadConfig(args []string) (demoConfig, error) {
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	configFile := fs.StringP("config", "c", "", "path to a YAML config file")
	fs.Duration("runner.tick_rate", 500*time.Millisecond, "period between ticks")
	fs.Uint64("runner.max_ticks", 20, "stop after this many ticks (0 = unlimited)")
	fs.Bool("runner.stop_on_terminal", false, "stop on the first terminal root outcome")
	fs.Int("robot.battery", 35, "initial battery percentage")
	fs.Bool("robot.obstacle", true, "start with an obstacle in the way")
	fs.Uint64("robot.drain_after", 9, "force a low battery after this tick (0 = never)")
	fs.Int("robot.drain_to", 10, "battery level forced by robot.drain_after")
	fs.Duration("robot.warmup", 0, "delay before collecting on each work cycle")
	fs.String("log.level", "info", "log level")
	fs.Bool("log.development", false, "human readable logs")
	fs.String("tree.file", "", "YAML tree description (default: built-in robot tree)")
	fs.Bool("output.dot", true, "print the final tree as Graphviz DOT")
	fs.Bool("output.json", false, "print the final tree as JSON")
	if err := fs.Parse(args); err != nil {
		return demoConfig{}, errors.Wrap(err, "parse flags")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return demoConfig{}, errors.Wrap(err, "bind flags")
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return demoConfig{}, errors.Wrapf(err, "read config %s", *configFile)
		}
	}

	var cfg demoConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return demoConfig{}, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Runner.Validate(); err != nil {
		return demoConfig{}, err
	}
	if cfg.Robot.Battery < 0 || cfg.Robot.Battery > 100 {
		return demoConfig{}, errors.Newf("robot.battery %d out of range [0, 100]", cfg.Robot.Battery)
	}
	return cfg, nil
}
