// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on media.tweet.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed tweet store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var tweetColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	schema.MediaTweet.ID,
	schema.MediaTweet.OwnerID,
	schema.MediaTweet.Content,
	schema.MediaTweet.CreatedAt,
	schema.MediaTweet.UpdatedAt,
)

// Create inserts a tweet.
func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s`,
		schema.MediaTweet.Table,
		schema.MediaTweet.ID,
		schema.MediaTweet.OwnerID,
		schema.MediaTweet.Content,
		schema.MediaTweet.CreatedAt,
		schema.MediaTweet.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, tweet.ID, tweet.Owner, tweet.Content).
		Scan(&tweet.CreatedAt, &tweet.UpdatedAt)
	return dberr.Wrap(err, "Tweet")
}

// FindByID loads one tweet.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tweet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, tweetColumns, schema.MediaTweet.Table, schema.MediaTweet.ID)

	tweet := &Tweet{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&tweet.ID, &tweet.Owner, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Tweet")
	}
	return tweet, nil
}

// ListByOwner returns a page of tweets, newest first, with the total.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2 OFFSET $3`,
		tweetColumns, schema.MediaTweet.Table, schema.MediaTweet.OwnerID, schema.MediaTweet.CreatedAt)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Tweet")
	}
	defer rows.Close()

	tweets := make([]*Tweet, 0, limit)
	total := 0
	for rows.Next() {
		tweet := &Tweet{}
		if err := rows.Scan(&tweet.ID, &tweet.Owner, &tweet.Content, &tweet.CreatedAt, &tweet.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Tweet")
		}
		tweets = append(tweets, tweet)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Tweet")
	}
	return tweets, total, nil
}

// UpdateContent rewrites a tweet body.
func (repository *PostgresRepository) UpdateContent(context context.Context, id, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.MediaTweet.Table, schema.MediaTweet.Content, schema.MediaTweet.UpdatedAt, schema.MediaTweet.ID)

	tag, err := repository.pool.Exec(context, query, id, content)
	if err != nil {
		return dberr.Wrap(err, "Tweet")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tweet")
	}
	return nil
}

// DeleteOwned deletes the tweet only when ownerID posted it.
func (repository *PostgresRepository) DeleteOwned(context context.Context, id, ownerID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.MediaTweet.Table, schema.MediaTweet.ID, schema.MediaTweet.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return 0, dberr.Wrap(err, "Tweet")
	}
	return tag.RowsAffected(), nil
}
