// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package relation manages binary existence edges between an identity and a
target: subscriptions (subscriber -> channel) and likes (likedBy -> video,
comment or tweet).

An edge is present or absent, never counted. Toggling alternates between
creating and removing it. Storage enforces at most one edge per
(actor, kind, target) with unique indexes, so a concurrent create that loses
the race is reported as a conflict instead of duplicating.
*/
package relation

import "time"

// TargetKind identifies what an edge points at.
type TargetKind string

const (
	KindChannel TargetKind = "channel"
	KindVideo   TargetKind = "video"
	KindComment TargetKind = "comment"
	KindTweet   TargetKind = "tweet"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	switch k {
	case KindChannel, KindVideo, KindComment, KindTweet:
		return true
	}
	return false
}

// IsLike reports whether edges of this kind live in the like table.
func (k TargetKind) IsLike() bool {
	return k == KindVideo || k == KindComment || k == KindTweet
}

// Target addresses one edge endpoint.
type Target struct {
	Kind TargetKind
	ID   string
}

// State is the tagged outcome of a toggle.
type State string

const (
	Created State = "created"
	Removed State = "removed"
)

// ToggleResult is returned by the toggle endpoints.
type ToggleResult struct {
	Kind     TargetKind `json:"kind"`
	TargetID string     `json:"targetId"`
	State    State      `json:"state"`
}

// Channel is the public summary of an account on relation listings.
type Channel struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName"`
	AvatarURL    string    `json:"avatar"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// LikedVideo is one entry of an identity's liked-videos listing.
type LikedVideo struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail"`
	OwnerID      string    `json:"ownerId"`
	OwnerName    string    `json:"ownerUsername"`
	LikedAt      time.Time `json:"likedAt"`
}
