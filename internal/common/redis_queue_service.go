package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NarrativeStreamName is the Redis Stream carrying worth-knowing candidates
// awaiting a generated justification sentence.
const NarrativeStreamName = "narrative:requests"

// RedisQueueService provides queue functionality using Redis Streams
type RedisQueueService struct {
	client *redis.Client
}

// NewRedisQueueService creates a new Redis queue service
func NewRedisQueueService(client *redis.Client) *RedisQueueService {
	return &RedisQueueService{
		client: client,
	}
}

// NarrativeRequest is one justification-generation task for a candidate
// resort. The worker replaces the templated fallback sentence with generated
// text keyed by resort + window.
type NarrativeRequest struct {
	ResortID    string  `json:"resort_id"`
	ResortName  string  `json:"resort_name"`
	PassType    string  `json:"pass_type"`
	WindowDays  int     `json:"window_days"`
	SnowTotalIn float64 `json:"snow_total_in"`
	DiffIn      float64 `json:"diff_in"`
	Ratio       float64 `json:"ratio"`
}

// Enqueue adds a narrative request to the stream.
func (s *RedisQueueService) Enqueue(ctx context.Context, streamName string, item *NarrativeRequest) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal narrative request: %w", err)
	}

	// XADD stream_name * data <json>
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// Dequeue reads one narrative request via consumer group.
// Returns (item, messageID, error); (nil, "", nil) on timeout.
func (s *RedisQueueService) Dequeue(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*NarrativeRequest, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			// No messages available (timeout)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var item NarrativeRequest
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal narrative request: %w", err)
	}

	return &item, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *RedisQueueService) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *RedisQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}
