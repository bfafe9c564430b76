// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment manages comments left on videos.

Edits are load-check-write; deletes are a single conditional statement.
*/
package comment

import (
	"context"
	"time"
)

// Comment is a text comment on a video.
type Comment struct {
	ID            string    `json:"id"`
	VideoID       string    `json:"videoId"`
	Owner         string    `json:"owner"`
	OwnerUsername string    `json:"ownerUsername,omitempty"`
	OwnerAvatar   string    `json:"ownerAvatar,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// OwnerID implements ownership.Owned.
func (comment *Comment) OwnerID() string { return comment.Owner }

const (
	FieldContent   = "content"
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"

	// MaxContentLength bounds a comment body.
	MaxContentLength = 5000
)

// Repository defines the persistence contract for comments.
type Repository interface {
	Create(context context.Context, comment *Comment) error
	FindByID(context context.Context, id string) (*Comment, error)

	// ListByVideo returns a page of a video's comments, newest first, and the total.
	ListByVideo(context context.Context, videoID string, limit, offset int) ([]*Comment, int, error)

	UpdateContent(context context.Context, id, content string) error

	// DeleteOwned deletes the comment matching id and ownerID and reports the affected rows.
	DeleteOwned(context context.Context, id, ownerID string) (int64, error)
}

// VideoChecker reports whether a video is visible to viewerID.
// It returns an apperr NotFound error otherwise.
type VideoChecker interface {
	Exists(context context.Context, id, viewerID string) error
}
