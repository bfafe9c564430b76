// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidtube/internal/platform/constants"

// SocialLikeTable represents the 'social.like' table.
//
// Exactly one of VideoID, CommentID and TweetID is set per row.
type SocialLikeTable struct {
	Table     string
	ID        string
	LikedByID string
	VideoID   string
	CommentID string
	TweetID   string
	CreatedAt string
}

// SocialLike is the schema definition for social.like
var SocialLike = SocialLikeTable{
	Table:     constants.SchemaSocial + ".like",
	ID:        "id",
	LikedByID: "likedbyid",
	VideoID:   "videoid",
	CommentID: "commentid",
	TweetID:   "tweetid",
	CreatedAt: "createdat",
}
