package realtime

import (
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultTickRate is used when Config.TickRate is zero.
const DefaultTickRate = 100 * time.Millisecond

// Config configures a Runner. The tags let it be decoded straight out of a
// viper sub-tree or a YAML document.
type Config struct {
	TickRate       time.Duration `mapstructure:"tick_rate" yaml:"tick_rate"`               // period between ticks
	MaxTicks       uint64        `mapstructure:"max_ticks" yaml:"max_ticks"`               // 0 means unlimited
	StopOnTerminal bool          `mapstructure:"stop_on_terminal" yaml:"stop_on_terminal"` // stop after Success/Failure/Error
}

// Validate checks cfg for values the runner cannot honor.
func (c Config) Validate() error {
	if c.TickRate < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative tick rate %s", c.TickRate)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.TickRate == 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}
