// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tweet manages short text posts on a channel.
package tweet

import (
	"context"
	"time"
)

// Tweet is a short text post owned by a channel.
type Tweet struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements ownership.Owned.
func (tweet *Tweet) OwnerID() string { return tweet.Owner }

const (
	FieldContent = "content"
	FieldTweetID = "tweetId"
	FieldUserID  = "userId"

	MaxContentLength = 280
)

// Repository defines the persistence contract for tweets.
type Repository interface {
	Create(context context.Context, tweet *Tweet) error
	FindByID(context context.Context, id string) (*Tweet, error)
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error)
	UpdateContent(context context.Context, id, content string) error
	DeleteOwned(context context.Context, id, ownerID string) (int64, error)
}
