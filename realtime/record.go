package realtime

import (
	"context"
	"time"

	bt "github.com/comalice/behaviortree"
)

// TickRecord describes one completed tick.
type TickRecord struct {
	RunnerID string        `json:"runnerID" yaml:"runnerID"`
	Tick     uint64        `json:"tick" yaml:"tick"`
	Status   bt.Status     `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	At       time.Time     `json:"at" yaml:"at"`
}

// Publisher receives a TickRecord after every tick. Publish is called from
// the ticking goroutine and should not block.
type Publisher interface {
	Publish(ctx context.Context, rec TickRecord) error
	Close() error
}
