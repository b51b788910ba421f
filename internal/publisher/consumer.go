package publisher

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamConsumer tails the box score stream.
type StreamConsumer struct {
	client *redis.Client
	stream string
	block  time.Duration
}

// NewStreamConsumer reads new entries only; history is served by the REST API.
func NewStreamConsumer(client *redis.Client) *StreamConsumer {
	return &StreamConsumer{
		client: client,
		stream: BoxScoreStream,
		block:  5 * time.Second,
	}
}

// Consume calls fn for each entry appended after Consume starts, until ctx is
// done. Undecodable entries are logged and skipped.
func (sc *StreamConsumer) Consume(ctx context.Context, fn func(BoxScoreEvent)) error {
	lastID := "$"
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		streams, err := sc.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{sc.stream, lastID},
			Block:   sc.block,
			Count:   100,
		}).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[ws] ⚠️  Stream read failed: %v", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				lastID = msg.ID
				ev, err := decodeEvent(msg.Values)
				if err != nil {
					log.Printf("[ws] ⚠️  Skipping stream entry %s: %v", msg.ID, err)
					continue
				}
				fn(ev)
			}
		}
	}
}
