// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on media.comment.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a comment. A video deleted in the meantime surfaces as NotFound.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		schema.MediaComment.Table,
		schema.MediaComment.ID,
		schema.MediaComment.VideoID,
		schema.MediaComment.OwnerID,
		schema.MediaComment.Content,
		schema.MediaComment.CreatedAt,
		schema.MediaComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.VideoID, comment.Owner, comment.Content).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)
	return dberr.Wrap(err, "Comment")
}

// FindByID loads one comment.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.MediaComment.ID,
		schema.MediaComment.VideoID,
		schema.MediaComment.OwnerID,
		schema.MediaComment.Content,
		schema.MediaComment.CreatedAt,
		schema.MediaComment.UpdatedAt,
		schema.MediaComment.Table,
		schema.MediaComment.ID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.Owner, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comment, nil
}

/*
ListByVideo returns a page of comments joined with their authors.
*/
func (repository *PostgresRepository) ListByVideo(context context.Context, videoID string, limit, offset int) ([]*Comment, int, error) {
	comment, account := schema.MediaComment, schema.UserAccount

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, a.%s, c.%s, c.%s, c.%s, COUNT(*) OVER()
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC
		LIMIT $2 OFFSET $3`,
		comment.ID, comment.VideoID, comment.OwnerID, account.Username, account.AvatarURL,
		comment.Content, comment.CreatedAt, comment.UpdatedAt,
		comment.Table,
		account.Table, account.ID, comment.OwnerID,
		comment.VideoID,
		comment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, videoID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	total := 0
	for rows.Next() {
		item := &Comment{}
		if err := rows.Scan(
			&item.ID, &item.VideoID, &item.Owner, &item.OwnerUsername, &item.OwnerAvatar,
			&item.Content, &item.CreatedAt, &item.UpdatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	return comments, total, nil
}

// UpdateContent rewrites the body of a comment.
func (repository *PostgresRepository) UpdateContent(context context.Context, id, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.MediaComment.Table, schema.MediaComment.Content, schema.MediaComment.UpdatedAt, schema.MediaComment.ID)

	tag, err := repository.pool.Exec(context, query, id, content)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

// DeleteOwned deletes the comment only when ownerID wrote it.
func (repository *PostgresRepository) DeleteOwned(context context.Context, id, ownerID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.MediaComment.Table, schema.MediaComment.ID, schema.MediaComment.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return 0, dberr.Wrap(err, "Comment")
	}
	return tag.RowsAffected(), nil
}
