// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidtube/internal/platform/constants"
)

// RedisStatsCache implements [StatsCache] with JSON values under a key prefix.
type RedisStatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a Redis-backed stats cache.
func NewStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func statsKey(channelID string) string {
	return constants.RedisPrefixChannelStats + channelID
}

/*
Get loads cached stats.

Returns:
  - *Stats: nil on a miss
  - bool: Whether the key was present
  - error: Connectivity or decode failures
*/
func (cache *RedisStatsCache) Get(context context.Context, channelID string) (*Stats, bool, error) {
	raw, err := cache.client.Get(context, statsKey(channelID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_stats_get_failed: %w", err)
	}

	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("redis_stats_decode_failed: %w", err)
	}
	return &stats, true, nil
}

// Set stores stats with the given TTL.
func (cache *RedisStatsCache) Set(context context.Context, stats *Stats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis_stats_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, statsKey(stats.ChannelID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis_stats_set_failed: %w", err)
	}
	return nil
}

// Delete removes the channel's entry. A missing key is not an error.
func (cache *RedisStatsCache) Delete(context context.Context, channelID string) error {
	if err := cache.client.Del(context, statsKey(channelID)).Err(); err != nil {
		return fmt.Errorf("redis_stats_delete_failed: %w", err)
	}
	return nil
}
