// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
)

// PostgresStatsReader implements [StatsReader] using pgx.
type PostgresStatsReader struct {
	pool *pgxpool.Pool
}

// NewStatsReader constructs a PostgreSQL backed stats reader.
func NewStatsReader(pool *pgxpool.Pool) *PostgresStatsReader {
	return &PostgresStatsReader{pool: pool}
}

/*
ChannelStats computes all four aggregates in one round trip.

Description: Likes are counted on the channel's videos only; comment and
tweet likes are not part of the channel total.
*/
func (repository *PostgresStatsReader) ChannelStats(context context.Context, channelID string) (*Stats, error) {
	video := schema.MediaVideo
	like := schema.SocialLike
	subscription := schema.SocialSubscription

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s WHERE %[2]s = $1),
			(SELECT COUNT(*) FROM %[3]s WHERE %[4]s = $1),
			(SELECT COALESCE(SUM(%[5]s), 0) FROM %[3]s WHERE %[4]s = $1),
			(SELECT COUNT(*) FROM %[6]s l JOIN %[3]s v ON v.%[7]s = l.%[8]s WHERE v.%[4]s = $1)`,
		subscription.Table, subscription.ChannelID,
		video.Table, video.OwnerID, video.ViewCount,
		like.Table, video.ID, like.VideoID,
	)

	stats := &Stats{ChannelID: channelID}
	err := repository.pool.QueryRow(context, query, channelID).Scan(
		&stats.TotalSubscribers,
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalLikes,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}
	return stats, nil
}
