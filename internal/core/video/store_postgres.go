// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video (Postgres) implements video storage on media.video.

  - Window Function: COUNT(*) OVER() returns the total with the page.
  - Conditional Delete: DELETE ... WHERE id AND ownerid RETURNING yields the
    pre-image the blob cascade needs.
  - Transactions: view counting and watch history move together.
*/
package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed video store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var videoColumns = strings.Join(schema.MediaVideo.Columns(), ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner, extra ...any) (*Video, error) {
	video := &Video{}
	dest := append([]any{
		&video.ID,
		&video.Owner,
		&video.VideoFileURL,
		&video.ThumbnailURL,
		&video.Title,
		&video.Description,
		&video.DurationSeconds,
		&video.ViewCount,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return video, nil
}

/*
Create inserts a new video. A missing owner surfaces as NotFound through the
foreign key.
*/
func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s, %s`,
		schema.MediaVideo.Table,
		schema.MediaVideo.ID,
		schema.MediaVideo.OwnerID,
		schema.MediaVideo.VideoFileURL,
		schema.MediaVideo.ThumbnailURL,
		schema.MediaVideo.Title,
		schema.MediaVideo.Description,
		schema.MediaVideo.Duration,
		schema.MediaVideo.IsPublished,
		schema.MediaVideo.ViewCount,
		schema.MediaVideo.CreatedAt,
		schema.MediaVideo.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		video.ID,
		video.Owner,
		video.VideoFileURL,
		video.ThumbnailURL,
		video.Title,
		video.Description,
		video.DurationSeconds,
		video.IsPublished,
	).Scan(&video.ViewCount, &video.CreatedAt, &video.UpdatedAt)

	return dberr.Wrap(err, "Video")
}

// FindByID loads a single video.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		videoColumns, schema.MediaVideo.Table, schema.MediaVideo.ID)

	video, err := scanVideo(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return video, nil
}

/*
List returns a filtered, sorted page of videos and the total count.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Video, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE TRUE`,
		videoColumns, schema.MediaVideo.Table))

	if !filter.IncludeUnpublished {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s", schema.MediaVideo.IsPublished))
	}

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.MediaVideo.OwnerID, argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)",
			schema.MediaVideo.Title, argID, schema.MediaVideo.Description, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	sort := schema.MediaVideo.CreatedAt
	switch filter.SortBy {
	case SortViews:
		sort = schema.MediaVideo.ViewCount
	case SortDuration:
		sort = schema.MediaVideo.Duration
	case SortTitle:
		sort = schema.MediaVideo.Title
	}

	direction := "DESC"
	if filter.SortType == "asc" {
		direction = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, %s DESC LIMIT $%d OFFSET $%d",
		sort, direction, schema.MediaVideo.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}
	defer rows.Close()

	videos := make([]*Video, 0, limit)
	total := 0
	for rows.Next() {
		video, err := scanVideo(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Video")
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Video")
	}

	return videos, total, nil
}

// UpdateDetails writes title, description and thumbnail url together.
func (repository *PostgresRepository) UpdateDetails(context context.Context, id string, details Details) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $1`,
		schema.MediaVideo.Table,
		schema.MediaVideo.Title,
		schema.MediaVideo.Description,
		schema.MediaVideo.ThumbnailURL,
		schema.MediaVideo.UpdatedAt,
		schema.MediaVideo.ID,
	)
	return repository.exec(context, query, id, details.Title, details.Description, details.ThumbnailURL)
}

// SetPublished writes the publication flag.
func (repository *PostgresRepository) SetPublished(context context.Context, id string, published bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.MediaVideo.Table, schema.MediaVideo.IsPublished, schema.MediaVideo.UpdatedAt, schema.MediaVideo.ID)
	return repository.exec(context, query, id, published)
}

/*
DeleteOwned removes the video matching id and ownerID.

Returns:
  - *Video: Pre-image, used to release blobs
  - error: apperr.NotFound when nothing matched
*/
func (repository *PostgresRepository) DeleteOwned(context context.Context, id, ownerID string) (*Video, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.MediaVideo.Table, schema.MediaVideo.ID, schema.MediaVideo.OwnerID, videoColumns)

	video, err := scanVideo(repository.pool.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return video, nil
}

/*
RecordView bumps the view counter and refreshes the viewer's history entry in
one transaction.
*/
func (repository *PostgresRepository) RecordView(context context.Context, id, viewerID string) error {
	history := schema.UserWatchHistory

	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		bump := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
			schema.MediaVideo.Table, schema.MediaVideo.ViewCount, schema.MediaVideo.ViewCount, schema.MediaVideo.ID)

		tag, err := tx.Exec(context, bump, id)
		if err != nil {
			return dberr.Wrap(err, "Video")
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Video")
		}

		upsert := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())
			ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s`,
			history.Table, history.UserID, history.VideoID, history.WatchedAt,
			history.UserID, history.VideoID, history.WatchedAt, history.WatchedAt,
		)
		if _, err := tx.Exec(context, upsert, viewerID, id); err != nil {
			return dberr.Wrap(err, "Watch history")
		}
		return nil
	})
}

func (repository *PostgresRepository) exec(context context.Context, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}
	return nil
}
