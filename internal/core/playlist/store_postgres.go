// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playlist (Postgres) implements playlist storage.

# Schema Table Mapping
  - media.playlist: the collection.
  - media.playlistvideo: entries, primary key (playlistid, videoid).
*/
package playlist

import (
	"context"
	"fmt"

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

// NewRepository constructs a PostgreSQL backed playlist store.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// playlistSelect selects a playlist with its entry count.
var playlistSelect = fmt.Sprintf(`
	SELECT p.%[1]s, p.%[2]s, p.%[3]s, p.%[4]s, p.%[5]s, p.%[6]s,
		(SELECT COUNT(*) FROM %[8]s e WHERE e.%[9]s = p.%[1]s)
	FROM %[7]s p`,
	schema.MediaPlaylist.ID,
	schema.MediaPlaylist.OwnerID,
	schema.MediaPlaylist.Name,
	schema.MediaPlaylist.Description,
	schema.MediaPlaylist.CreatedAt,
	schema.MediaPlaylist.UpdatedAt,
	schema.MediaPlaylist.Table,
	schema.MediaPlaylistVideo.Table,
	schema.MediaPlaylistVideo.PlaylistID,
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(row rowScanner) (*Playlist, error) {
	playlist := &Playlist{}
	err := row.Scan(
		&playlist.ID,
		&playlist.Owner,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
		&playlist.VideoCount,
	)
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

// Create inserts an empty playlist.
func (repository *PostgresRepository) Create(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s`,
		schema.MediaPlaylist.Table,
		schema.MediaPlaylist.ID,
		schema.MediaPlaylist.OwnerID,
		schema.MediaPlaylist.Name,
		schema.MediaPlaylist.Description,
		schema.MediaPlaylist.CreatedAt,
		schema.MediaPlaylist.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, playlist.ID, playlist.Owner, playlist.Name, playlist.Description).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	return dberr.Wrap(err, "Playlist")
}

// FindByID loads one playlist without its entries.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Playlist, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, playlistSelect, schema.MediaPlaylist.ID)

	playlist, err := scanPlaylist(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}
	return playlist, nil
}

// ListByOwner returns a page of playlists, newest first, with the total.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Playlist, int, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1 ORDER BY p.%s DESC LIMIT $2 OFFSET $3`,
		playlistSelect, schema.MediaPlaylist.OwnerID, schema.MediaPlaylist.CreatedAt)
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.MediaPlaylist.Table, schema.MediaPlaylist.OwnerID)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Playlist")
	}

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Playlist")
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0, limit)
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Playlist")
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Playlist")
	}
	return playlists, total, nil
}

// UpdateDetails writes name and description.
func (repository *PostgresRepository) UpdateDetails(context context.Context, id, name, description string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		schema.MediaPlaylist.Table,
		schema.MediaPlaylist.Name,
		schema.MediaPlaylist.Description,
		schema.MediaPlaylist.UpdatedAt,
		schema.MediaPlaylist.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, name, description)
	if err != nil {
		return dberr.Wrap(err, "Playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

// DeleteOwned deletes the playlist only when ownerID created it. Entries cascade.
func (repository *PostgresRepository) DeleteOwned(context context.Context, id, ownerID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.MediaPlaylist.Table, schema.MediaPlaylist.ID, schema.MediaPlaylist.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return 0, dberr.Wrap(err, "Playlist")
	}
	return tag.RowsAffected(), nil
}

// Videos lists playlist entries joined with their videos.
func (repository *PostgresRepository) Videos(context context.Context, playlistID string) ([]*Entry, error) {
	entry, video := schema.MediaPlaylistVideo, schema.MediaVideo

	query := fmt.Sprintf(`
		SELECT v.%s, v.%s, v.%s, v.%s, v.%s, e.%s
		FROM %s e
		JOIN %s v ON v.%s = e.%s
		WHERE e.%s = $1
		ORDER BY e.%s`,
		video.ID, video.Title, video.ThumbnailURL, video.Duration, video.ViewCount, entry.AddedAt,
		entry.Table,
		video.Table, video.ID, entry.VideoID,
		entry.PlaylistID,
		entry.AddedAt,
	)

	rows, err := repository.pool.Query(context, query, playlistID)
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		item := &Entry{}
		if err := rows.Scan(&item.VideoID, &item.Title, &item.ThumbnailURL, &item.DurationSeconds, &item.ViewCount, &item.AddedAt); err != nil {
			return nil, dberr.Wrap(err, "Playlist")
		}
		entries = append(entries, item)
	}
	return entries, dberr.Wrap(rows.Err(), "Playlist")
}

/*
AddVideo inserts the entry and touches the playlist in one transaction.
*/
func (repository *PostgresRepository) AddVideo(context context.Context, playlistID, videoID string) error {
	entry := schema.MediaPlaylistVideo

	return postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, entry.Table, entry.PlaylistID, entry.VideoID)
		if _, err := tx.Exec(context, insert, playlistID, videoID); err != nil {
			if dberr.IsUniqueViolation(err) {
				return apperr.Conflict("Video already in playlist")
			}
			return dberr.Wrap(err, "Video")
		}

		touch := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
			schema.MediaPlaylist.Table, schema.MediaPlaylist.UpdatedAt, schema.MediaPlaylist.ID)
		if _, err := tx.Exec(context, touch, playlistID); err != nil {
			return dberr.Wrap(err, "Playlist")
		}
		return nil
	})
}

// RemoveVideo deletes one entry.
func (repository *PostgresRepository) RemoveVideo(context context.Context, playlistID, videoID string) (int64, error) {
	entry := schema.MediaPlaylistVideo
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, entry.Table, entry.PlaylistID, entry.VideoID)

	tag, err := repository.pool.Exec(context, query, playlistID, videoID)
	if err != nil {
		return 0, dberr.Wrap(err, "Playlist")
	}
	return tag.RowsAffected(), nil
}
