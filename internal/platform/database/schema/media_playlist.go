// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidtube/internal/platform/constants"

// MediaPlaylistTable represents the 'media.playlist' table
type MediaPlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// MediaPlaylist is the schema definition for media.playlist
var MediaPlaylist = MediaPlaylistTable{
	Table:       constants.SchemaMedia + ".playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// MediaPlaylistVideoTable represents the 'media.playlistvideo' join table
type MediaPlaylistVideoTable struct {
	Table      string
	PlaylistID string
	VideoID    string
	AddedAt    string
}

// MediaPlaylistVideo is the schema definition for media.playlistvideo
var MediaPlaylistVideo = MediaPlaylistVideoTable{
	Table:      constants.SchemaMedia + ".playlistvideo",
	PlaylistID: "playlistid",
	VideoID:    "videoid",
	AddedAt:    "addedat",
}
