// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidtube/internal/platform/constants"

// UserWatchHistoryTable represents the 'users.watchhistory' table
type UserWatchHistoryTable struct {
	Table     string
	UserID    string
	VideoID   string
	WatchedAt string
}

// UserWatchHistory is the schema definition for users.watchhistory
var UserWatchHistory = UserWatchHistoryTable{
	Table:     constants.SchemaUsers + ".watchhistory",
	UserID:    "userid",
	VideoID:   "videoid",
	WatchedAt: "watchedat",
}
