// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/core/video"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

type countingReader struct {
	calls       int
	subscribers int64
}

func (reader *countingReader) ChannelStats(_ context.Context, channelID string) (*Stats, error) {
	reader.calls++
	return &Stats{ChannelID: channelID, TotalSubscribers: reader.subscribers}, nil
}

type mapCache struct {
	entries map[string]Stats
	down    bool
}

func (cache *mapCache) Get(_ context.Context, channelID string) (*Stats, bool, error) {
	if cache.down {
		return nil, false, errors.New("connection refused")
	}
	stats, ok := cache.entries[channelID]
	if !ok {
		return nil, false, nil
	}
	return &stats, true, nil
}

func (cache *mapCache) Set(_ context.Context, stats *Stats, _ time.Duration) error {
	if cache.down {
		return errors.New("connection refused")
	}
	cache.entries[stats.ChannelID] = *stats
	return nil
}

func (cache *mapCache) Delete(_ context.Context, channelID string) error {
	if cache.down {
		return errors.New("connection refused")
	}
	delete(cache.entries, channelID)
	return nil
}

type recordingLister struct {
	filter video.Filter
}

func (lister *recordingLister) List(_ context.Context, filter video.Filter, _, _ int) ([]*video.Video, int, error) {
	lister.filter = filter
	return []*video.Video{{ID: "v1", Owner: filter.OwnerID}}, 1, nil
}

func TestChannelStats_ReadThroughAndInvalidate(t *testing.T) {
	reader := &countingReader{subscribers: 3}
	cache := &mapCache{entries: map[string]Stats{}}
	service := NewService(reader, cache, &recordingLister{}, time.Minute)
	ctx := context.Background()

	first, err := service.ChannelStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.TotalSubscribers)

	reader.subscribers = 4
	second, err := service.ChannelStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.TotalSubscribers)
	assert.Equal(t, 1, reader.calls)

	service.Invalidate(ctx, "alice")
	third, err := service.ChannelStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(4), third.TotalSubscribers)
	assert.Equal(t, 2, reader.calls)
}

func TestChannelStats_CacheDownFallsBack(t *testing.T) {
	reader := &countingReader{subscribers: 1}
	service := NewService(reader, &mapCache{down: true}, &recordingLister{}, time.Minute)

	stats, err := service.ChannelStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSubscribers)

	assert.NotPanics(t, func() { service.Invalidate(context.Background(), "alice") })
}

func TestChannelStats_ZeroTTLSkipsCache(t *testing.T) {
	reader := &countingReader{}
	cache := &mapCache{entries: map[string]Stats{}}
	service := NewService(reader, cache, &recordingLister{}, 0)

	for range 2 {
		_, err := service.ChannelStats(context.Background(), "alice")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, reader.calls)
	assert.Empty(t, cache.entries)
}

func TestChannelVideos(t *testing.T) {
	lister := &recordingLister{}
	service := NewService(&countingReader{}, &mapCache{entries: map[string]Stats{}}, lister, time.Minute)

	_, _, err := service.ChannelVideos(context.Background(), "", 10, 0)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	videos, total, err := service.ChannelVideos(context.Background(), "alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, videos, 1)
	assert.Equal(t, "alice", lister.filter.OwnerID)
	assert.True(t, lister.filter.IncludeUnpublished)
}
