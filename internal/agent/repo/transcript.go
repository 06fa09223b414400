package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	errx "github.com/shreyan001/adaptic-backend/internal/core/error"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// RedisTranscriptStore keeps per-conversation transcripts in a Redis list
// with a sliding TTL.
type RedisTranscriptStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisTranscriptStore(rdb redis.Cmdable, ttl time.Duration) *RedisTranscriptStore {
	return &RedisTranscriptStore{rdb: rdb, ttl: ttl}
}

func (r *RedisTranscriptStore) transcriptKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:transcript", conversationID)
}

func (r *RedisTranscriptStore) AddTurn(ctx context.Context, conversationID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal transcript turn")
		return fmt.Errorf("marshal transcript turn: %w", err)
	}
	key := r.transcriptKey(conversationID)

	// append turn
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push transcript turn to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on transcript key")
		}
	}
	return nil
}

func (r *RedisTranscriptStore) LoadTranscript(ctx context.Context, conversationID string) ([]*schema.Message, error) {
	key := r.transcriptKey(conversationID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []*schema.Message{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("conversationID", conversationID).Int("index", i).Msg("failed to unmarshal transcript turn")
			return nil, fmt.Errorf("unmarshal transcript turn at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

func (r *RedisTranscriptStore) ClearTranscript(ctx context.Context, conversationID string) error {
	key := r.transcriptKey(conversationID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete transcript from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisTranscriptStore) TurnCount(ctx context.Context, conversationID string) (int, error) {
	key := r.transcriptKey(conversationID)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to count transcript turns in redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ model.TranscriptStore = (*RedisTranscriptStore)(nil)
