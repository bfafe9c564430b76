// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playlist manages user-curated ordered video collections.

A video appears in a playlist at most once; the (playlistid, videoid) primary
key enforces it and a duplicate add is reported as Conflict.
*/
package playlist

import (
	"context"
	"time"
)

// Playlist is a named collection owned by a channel.
type Playlist struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoCount  int       `json:"videoCount"`
	Videos      []*Entry  `json:"videos,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnerID implements ownership.Owned.
func (playlist *Playlist) OwnerID() string { return playlist.Owner }

// Entry is one video inside a playlist.
type Entry struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail"`
	DurationSeconds float64   `json:"duration"`
	ViewCount       int64     `json:"views"`
	AddedAt         time.Time `json:"addedAt"`
}

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPlaylistID  = "playlistId"
	FieldVideoID     = "videoId"
	FieldUserID      = "userId"

	MaxNameLength = 150
)

// Repository defines the persistence contract for playlists.
type Repository interface {
	Create(context context.Context, playlist *Playlist) error
	FindByID(context context.Context, id string) (*Playlist, error)
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Playlist, int, error)
	UpdateDetails(context context.Context, id, name, description string) error
	DeleteOwned(context context.Context, id, ownerID string) (int64, error)

	// Videos lists the entries of a playlist, oldest addition first.
	Videos(context context.Context, playlistID string) ([]*Entry, error)

	/*
		AddVideo inserts an entry.

		Returns:
		  - error: apperr.Conflict when already present, apperr.NotFound when the video is gone
	*/
	AddVideo(context context.Context, playlistID, videoID string) error

	// RemoveVideo deletes an entry and reports the affected rows.
	RemoveVideo(context context.Context, playlistID, videoID string) (int64, error)
}

// VideoChecker reports whether a video is visible to viewerID.
type VideoChecker interface {
	Exists(context context.Context, id, viewerID string) error
}
