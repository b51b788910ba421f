package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/redis/go-redis/v9"
)

// BoxScoreStream carries every newly extracted box score.
const BoxScoreStream = "esake.boxscores"

// BoxScoreEvent is the payload of one stream entry.
type BoxScoreEvent struct {
	GameID    string             `json:"game_id"`
	BoxScore  *boxscore.BoxScore `json:"box_score"`
	Timestamp int64              `json:"timestamp"`
}

// RedisPublisher publishes box scores to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisPublisherFromClient(client), nil
}

// NewRedisPublisherFromClient creates a publisher from an existing client
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: BoxScoreStream,
	}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishBoxScore appends an extracted box score to the stream
func (rp *RedisPublisher) PublishBoxScore(ctx context.Context, gameID string, box *boxscore.BoxScore) error {
	values, err := encodeEvent(BoxScoreEvent{GameID: gameID, BoxScore: box, Timestamp: time.Now().Unix()})
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rp.stream,
		Values: values,
	}).Err()
}

func encodeEvent(ev BoxScoreEvent) (map[string]interface{}, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encoding box score %s: %w", ev.GameID, err)
	}
	return map[string]interface{}{
		"game_id":   ev.GameID,
		"data":      string(data),
		"timestamp": ev.Timestamp,
	}, nil
}

func decodeEvent(values map[string]interface{}) (BoxScoreEvent, error) {
	var ev BoxScoreEvent
	raw, ok := values["data"].(string)
	if !ok {
		return ev, fmt.Errorf("stream entry has no data field")
	}
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return ev, fmt.Errorf("decoding stream entry: %w", err)
	}
	return ev, nil
}
