// Package production provides integrations around a running tree: tick
// record publishing and diagram export.
package production

import (
	"context"
	"sync"

	"github.com/comalice/behaviortree/realtime"
)

// ChannelPublisher forwards tick records to a Go channel. Publish never
// blocks: records are dropped when the channel is full.
type ChannelPublisher struct {
	mu      sync.Mutex
	ch      chan<- realtime.TickRecord
	closed  bool
	dropped uint64
}

var _ realtime.Publisher = (*ChannelPublisher)(nil)

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- realtime.TickRecord) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, rec realtime.TickRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	select {
	case p.ch <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil
	}
}

// Dropped returns the number of records discarded on backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}

// Close closes the output channel. Later publishes are ignored.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
