// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard aggregates a channel owner's own numbers.

Stats are read through a short-lived cache. Subscription toggles invalidate
the channel's entry; view and like drift is bounded by the cache TTL.
*/
package dashboard

import (
	"context"
	"time"

	"github.com/taibuivan/vidtube/internal/core/video"
)

// Stats are the headline numbers of a channel.
type Stats struct {
	ChannelID        string `json:"channelId"`
	TotalSubscribers int64  `json:"totalSubscribers"`
	TotalVideos      int64  `json:"totalVideos"`
	TotalViews       int64  `json:"totalViews"`
	TotalLikes       int64  `json:"totalLikes"`
}

// StatsReader computes fresh stats from the relational store.
type StatsReader interface {
	ChannelStats(ctx context.Context, channelID string) (*Stats, error)
}

// StatsCache holds computed stats for a bounded time. Get reports a miss with
// (nil, false, nil).
type StatsCache interface {
	Get(ctx context.Context, channelID string) (*Stats, bool, error)
	Set(ctx context.Context, stats *Stats, ttl time.Duration) error
	Delete(ctx context.Context, channelID string) error
}

// VideoLister is the slice of the video catalogue the dashboard reads.
type VideoLister interface {
	List(ctx context.Context, filter video.Filter, limit, offset int) ([]*video.Video, int, error)
}
