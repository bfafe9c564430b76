// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidtube/internal/platform/constants"

// MediaTweetTable represents the 'media.tweet' table
type MediaTweetTable struct {
	Table     string
	ID        string
	OwnerID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// MediaTweet is the schema definition for media.tweet
var MediaTweet = MediaTweetTable{
	Table:     constants.SchemaMedia + ".tweet",
	ID:        "id",
	OwnerID:   "ownerid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
