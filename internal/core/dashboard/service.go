// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/core/video"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
)

// Service serves the channel dashboard.
type Service struct {
	stats  StatsReader
	cache  StatsCache
	videos VideoLister
	ttl    time.Duration
}

// NewService constructs a dashboard [Service]. A zero ttl disables caching.
func NewService(stats StatsReader, cache StatsCache, videos VideoLister, ttl time.Duration) *Service {
	return &Service{stats: stats, cache: cache, videos: videos, ttl: ttl}
}

/*
ChannelStats returns the caller's channel stats.

Description: Read-through. Cache failures are logged and the request falls
back to the database, so Redis being down degrades latency only.

Parameters:
  - context: context.Context
  - actorID: string

Returns:
  - *Stats
  - error: Unauthorized, or a database failure
*/
func (service *Service) ChannelStats(context context.Context, actorID string) (*Stats, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	if service.ttl > 0 {
		cached, ok, err := service.cache.Get(context, actorID)
		switch {
		case err != nil:
			logger.WarnContext(context, "dashboard_cache_get_failed",
				slog.String("channel_id", actorID),
				slog.Any("error", err),
			)
		case ok:
			return cached, nil
		}
	}

	stats, err := service.stats.ChannelStats(context, actorID)
	if err != nil {
		return nil, fmt.Errorf("dashboard_service_stats_failed: %w", err)
	}

	if service.ttl > 0 {
		if err := service.cache.Set(context, stats, service.ttl); err != nil {
			logger.WarnContext(context, "dashboard_cache_set_failed",
				slog.String("channel_id", actorID),
				slog.Any("error", err),
			)
		}
	}

	return stats, nil
}

// ChannelVideos lists every video of the caller's channel, unpublished ones included.
func (service *Service) ChannelVideos(context context.Context, actorID string, limit, offset int) ([]*video.Video, int, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, 0, err
	}

	filter := video.Filter{OwnerID: actorID, IncludeUnpublished: true}
	videos, total, err := service.videos.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dashboard_service_videos_failed: %w", err)
	}
	return videos, total, nil
}

// Invalidate drops the cached stats of channelID. It has the shape of a
// relation.ChannelHook and never fails the caller.
func (service *Service) Invalidate(ctx context.Context, channelID string) {
	if err := service.cache.Delete(ctx, channelID); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "dashboard_cache_invalidate_failed",
			slog.String("channel_id", channelID),
			slog.Any("error", err),
		)
	}
}
