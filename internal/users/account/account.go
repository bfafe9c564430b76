// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles profile management for an authenticated identity.

It lets users read and edit their own account, swap their avatar and cover
images, look up a public channel profile and read their watch history.

# Architecture

  - Entities: ChannelProfile, HistoryEntry (read models).
  - Domain: This package depends on the auth package for the User entity.
  - Blobs: Image swaps go through cascade.Replace.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/vidtube/internal/users/auth"
)

// # Read Models

// ChannelProfile is the public view of a channel with its subscription counters.
type ChannelProfile struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatar"`
	CoverURL                  string `json:"coverImage,omitempty"`
	SubscribersCount          int    `json:"subscribersCount"`
	ChannelsSubscribedToCount int    `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

// HistoryEntry is one watched video with its owner summary.
type HistoryEntry struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	ThumbnailURL    string    `json:"thumbnail"`
	DurationSeconds float64   `json:"duration"`
	ViewCount       int64     `json:"views"`
	OwnerID         string    `json:"ownerId"`
	OwnerUsername   string    `json:"ownerUsername"`
	OwnerAvatarURL  string    `json:"ownerAvatar"`
	WatchedAt       time.Time `json:"watchedAt"`
}

// # Field Identifiers

const (
	FieldFullName   = "fullName"
	FieldEmail      = "email"
	FieldAvatar     = "avatar"
	FieldCoverImage = "coverImage"
	FieldUsername   = "username"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for profile data.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateDetails writes the full name and email of an account.

		Returns:
		  - *auth.User: The row after the update
		  - error: apperr.Conflict when the email belongs to someone else
	*/
	UpdateDetails(context context.Context, id, fullName, email string) (*auth.User, error)

	// SetAvatar points the account at a new avatar url.
	SetAvatar(context context.Context, id, url string) error

	// SetCover points the account at a new cover image url.
	SetCover(context context.Context, id, url string) error

	/*
		ChannelProfile loads a channel by username with its counters.

		Parameters:
		  - username: string (normalized)
		  - viewerID: string ("" for anonymous; IsSubscribed is then false)
	*/
	ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error)

	// WatchHistory returns a page of watched videos, most recent first, and the total.
	WatchHistory(context context.Context, userID string, limit, offset int) ([]*HistoryEntry, int, error)
}
