// Package realtime signals poll viewers that results changed. The signal is a
// redis pub/sub message; any frontend gateway subscribed to the channel can
// push a refresh to open poll pages.
package realtime

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelPollUpdated carries poll ids whose vote counts changed.
const ChannelPollUpdated = "poll.updated"

// Publisher publishes poll update signals to redis.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewPublisher creates a redis-backed publisher.
func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

// PollUpdated announces that the poll's results changed. The vote itself is
// already committed; a failed publish is logged and swallowed.
func (p *Publisher) PollUpdated(ctx context.Context, pollID uuid.UUID) {
	if err := p.rdb.Publish(ctx, ChannelPollUpdated, pollID.String()).Err(); err != nil {
		p.logger.Warn("publish poll update", zap.String("poll_id", pollID.String()), zap.Error(err))
	}
}
