// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relation (Postgres) implements the edge storage and listings.

# Schema Table Mapping
  - social.subscription: subscriber -> channel, unique per pair.
  - social.like: likedBy -> exactly one of video/comment/tweet, one partial
    unique index per target column.
*/
package relation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

// PostgresStore implements [EdgeStore] and [Reader] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new relation store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// edgeTable resolves the table, actor column and target column for a kind.
func edgeTable(kind TargetKind) (table, actorColumn, targetColumn string) {
	switch kind {
	case KindChannel:
		return schema.SocialSubscription.Table, schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID
	case KindVideo:
		return schema.SocialLike.Table, schema.SocialLike.LikedByID, schema.SocialLike.VideoID
	case KindComment:
		return schema.SocialLike.Table, schema.SocialLike.LikedByID, schema.SocialLike.CommentID
	default:
		return schema.SocialLike.Table, schema.SocialLike.LikedByID, schema.SocialLike.TweetID
	}
}

func edgeName(kind TargetKind) string {
	if kind == KindChannel {
		return "Subscription"
	}
	return "Like"
}

func targetName(kind TargetKind) string {
	switch kind {
	case KindChannel:
		return "Channel"
	case KindVideo:
		return "Video"
	case KindComment:
		return "Comment"
	default:
		return "Tweet"
	}
}

// # EdgeStore Methods

/*
Exists checks for an edge between actorID and target.

Parameters:
  - context: context.Context
  - actorID: string
  - target: Target

Returns:
  - bool: Presence
  - error: Query failures
*/
func (repository *PostgresStore) Exists(context context.Context, actorID string, target Target) (bool, error) {
	table, actorColumn, targetColumn := edgeTable(target.Kind)
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		table, actorColumn, targetColumn)

	var exists bool
	if err := repository.pool.QueryRow(context, query, actorID, target.ID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, edgeName(target.Kind))
	}
	return exists, nil
}

/*
Insert creates a new edge.

Description: The like table's CHECK constraint guarantees exactly one target
column is set; only the column for target.Kind is written here.

Returns:
  - error: Conflict on unique violation, NotFound on foreign-key violation
*/
func (repository *PostgresStore) Insert(context context.Context, actorID string, target Target) error {
	table, actorColumn, targetColumn := edgeTable(target.Kind)
	idColumn := schema.SocialLike.ID
	if target.Kind == KindChannel {
		idColumn = schema.SocialSubscription.ID
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		table, idColumn, actorColumn, targetColumn)

	_, err := repository.pool.Exec(context, query, uuidv7.New(), actorID, target.ID)
	if err == nil {
		return nil
	}

	wrapped := dberr.Wrap(err, edgeName(target.Kind))
	if apperr.IsNotFound(wrapped) {
		return apperr.NotFound(targetName(target.Kind))
	}
	return wrapped
}

/*
Remove deletes the edge. Zero affected rows is not an error.
*/
func (repository *PostgresStore) Remove(context context.Context, actorID string, target Target) (int64, error) {
	table, actorColumn, targetColumn := edgeTable(target.Kind)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table, actorColumn, targetColumn)

	tag, err := repository.pool.Exec(context, query, actorID, target.ID)
	if err != nil {
		return 0, dberr.Wrap(err, edgeName(target.Kind))
	}
	return tag.RowsAffected(), nil
}

// # Reader Methods

/*
Subscribers lists accounts subscribed to channelID, newest first.
*/
func (repository *PostgresStore) Subscribers(context context.Context, channelID string, limit, offset int) ([]*Channel, int, error) {
	return repository.listChannels(context,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
		channelID, limit, offset)
}

/*
SubscribedChannels lists channels subscriberID follows, newest first.
*/
func (repository *PostgresStore) SubscribedChannels(context context.Context, subscriberID string, limit, offset int) ([]*Channel, int, error) {
	return repository.listChannels(context,
		schema.SocialSubscription.ChannelID, schema.SocialSubscription.SubscriberID,
		subscriberID, limit, offset)
}

// listChannels joins the account on joinColumn and filters on filterColumn.
func (repository *PostgresStore) listChannels(context context.Context, joinColumn, filterColumn, id string, limit, offset int) ([]*Channel, int, error) {
	subscription := schema.SocialSubscription
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, s.%s, COUNT(*) OVER()
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1
		ORDER BY s.%s DESC
		LIMIT $2 OFFSET $3`,
		account.ID, account.Username, account.FullName, account.AvatarURL, subscription.CreatedAt,
		subscription.Table,
		account.Table, account.ID, joinColumn,
		filterColumn,
		subscription.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, id, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Subscription")
	}
	defer rows.Close()

	channels := make([]*Channel, 0)
	total := 0
	for rows.Next() {
		channel := &Channel{}
		if err := rows.Scan(&channel.ID, &channel.Username, &channel.FullName, &channel.AvatarURL, &channel.SubscribedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres_relation_repo_scan_failed: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Subscription")
	}

	return channels, total, nil
}

/*
LikedVideos lists published videos liked by userID, newest like first.
*/
func (repository *PostgresStore) LikedVideos(context context.Context, userID string, limit, offset int) ([]*LikedVideo, int, error) {
	like := schema.SocialLike
	video := schema.MediaVideo
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT v.%s, v.%s, v.%s, a.%s, a.%s, l.%s, COUNT(*) OVER()
		FROM %s l
		JOIN %s v ON v.%s = l.%s
		JOIN %s a ON a.%s = v.%s
		WHERE l.%s = $1 AND v.%s = TRUE
		ORDER BY l.%s DESC
		LIMIT $2 OFFSET $3`,
		video.ID, video.Title, video.ThumbnailURL, account.ID, account.Username, like.CreatedAt,
		like.Table,
		video.Table, video.ID, like.VideoID,
		account.Table, account.ID, video.OwnerID,
		like.LikedByID, video.IsPublished,
		like.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Like")
	}
	defer rows.Close()

	videos := make([]*LikedVideo, 0)
	total := 0
	for rows.Next() {
		item := &LikedVideo{}
		if err := rows.Scan(&item.VideoID, &item.Title, &item.ThumbnailURL, &item.OwnerID, &item.OwnerName, &item.LikedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres_relation_repo_scan_failed: %w", err)
		}
		videos = append(videos, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Like")
	}

	return videos, total, nil
}
