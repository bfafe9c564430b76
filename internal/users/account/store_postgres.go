// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements profile storage and channel read models.

# Schema Table Mapping
  - users.account: profile columns (secret hashes are never selected).
  - social.subscription: counters for channel profiles.
  - users.watchhistory joined with media.video: watch history.
*/
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
	"github.com/taibuivan/vidtube/internal/users/auth"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

var profileColumns = strings.Join(schema.UserAccount.Columns(), ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// FindByID retrieves the public and private profile of an account.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		profileColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
UpdateDetails writes full name and email in a single statement.

Returns:
  - error: Conflict when the email is taken by another account
*/
func (repository *PostgresAccountRepository) UpdateDetails(context context.Context, id, fullName, email string) (*auth.User, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName,
		schema.UserAccount.Email,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		profileColumns,
	)

	user, err := scanProfile(repository.pool.QueryRow(context, query, id, fullName, email))
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// SetAvatar updates the avatar url.
func (repository *PostgresAccountRepository) SetAvatar(context context.Context, id, url string) error {
	return repository.setImage(context, id, schema.UserAccount.AvatarURL, url)
}

// SetCover updates the cover image url.
func (repository *PostgresAccountRepository) SetCover(context context.Context, id, url string) error {
	return repository.setImage(context, id, schema.UserAccount.CoverURL, url)
}

func (repository *PostgresAccountRepository) setImage(context context.Context, id, column, url string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, column, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id, url)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
ChannelProfile loads a channel with its subscription counters.

Description: Counters are correlated subqueries on social.subscription, whose
unique index on (subscriberid, channelid) serves both directions.
*/
func (repository *PostgresAccountRepository) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	account, subscription := schema.UserAccount, schema.SocialSubscription

	query := fmt.Sprintf(`
		SELECT a.%[1]s, a.%[2]s, a.%[3]s, a.%[4]s, a.%[5]s, a.%[6]s,
			(SELECT COUNT(*) FROM %[9]s s WHERE s.%[10]s = a.%[1]s),
			(SELECT COUNT(*) FROM %[9]s s WHERE s.%[11]s = a.%[1]s),
			EXISTS (SELECT 1 FROM %[9]s s WHERE s.%[10]s = a.%[1]s AND s.%[11]s::text = $2)
		FROM %[7]s a
		WHERE a.%[8]s = $1`,
		account.ID, account.Username, account.FullName, account.Email, account.AvatarURL, account.CoverURL,
		account.Table, account.Username,
		subscription.Table, subscription.ChannelID, subscription.SubscriberID,
	)

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewerID).Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverURL,
		&profile.SubscribersCount,
		&profile.ChannelsSubscribedToCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}
	return profile, nil
}

// WatchHistory returns a page of watched videos with their owners.
func (repository *PostgresAccountRepository) WatchHistory(context context.Context, userID string, limit, offset int) ([]*HistoryEntry, int, error) {
	history, video, account := schema.UserWatchHistory, schema.MediaVideo, schema.UserAccount

	query := fmt.Sprintf(`
		SELECT v.%s, v.%s, v.%s, v.%s, v.%s, a.%s, a.%s, a.%s, h.%s, COUNT(*) OVER()
		FROM %s h
		JOIN %s v ON v.%s = h.%s
		JOIN %s a ON a.%s = v.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC
		LIMIT $2 OFFSET $3`,
		video.ID, video.Title, video.ThumbnailURL, video.Duration, video.ViewCount,
		account.ID, account.Username, account.AvatarURL, history.WatchedAt,
		history.Table,
		video.Table, video.ID, history.VideoID,
		account.Table, account.ID, video.OwnerID,
		history.UserID,
		history.WatchedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Watch history")
	}
	defer rows.Close()

	entries := make([]*HistoryEntry, 0, limit)
	total := 0
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(
			&entry.VideoID,
			&entry.Title,
			&entry.ThumbnailURL,
			&entry.DurationSeconds,
			&entry.ViewCount,
			&entry.OwnerID,
			&entry.OwnerUsername,
			&entry.OwnerAvatarURL,
			&entry.WatchedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Watch history")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Watch history")
	}

	return entries, total, nil
}
