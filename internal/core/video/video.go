// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video manages published videos: their metadata, their two blobs
(video file and thumbnail) and the view/watch-history side effects of playback.

# Visibility

An unpublished video is visible to its owner only; everyone else observes
NotFound.
*/
package video

import (
	"time"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/platform/blob"
)

// # Domain Entities

// Video is a single uploaded video.
type Video struct {
	ID              string    `json:"id"`
	Owner           string    `json:"owner"`
	VideoFileURL    string    `json:"videoFile"`
	ThumbnailURL    string    `json:"thumbnail"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationSeconds float64   `json:"duration"`
	ViewCount       int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OwnerID implements ownership.Owned.
func (video *Video) OwnerID() string { return video.Owner }

// BlobRefs lists the objects a video row references.
func (video *Video) BlobRefs() []cascade.Ref {
	return []cascade.Ref{
		{URL: video.ThumbnailURL, Kind: blob.KindImage},
		{URL: video.VideoFileURL, Kind: blob.KindVideo},
	}
}

// # Search & Filtering

// Sortable columns for [Filter.SortBy].
const (
	SortCreatedAt = "createdAt"
	SortViews     = "views"
	SortDuration  = "duration"
	SortTitle     = "title"
)

// Filter holds the parameters for a video list query.
type Filter struct {
	Query    string `json:"query,omitempty"`    // Title/description substring
	OwnerID  string `json:"userId,omitempty"`   // Restrict to one channel
	SortBy   string `json:"sortBy,omitempty"`   // createdAt, views, duration, title
	SortType string `json:"sortType,omitempty"` // asc or desc

	// IncludeUnpublished is set by the service when the viewer lists their own channel.
	IncludeUnpublished bool `json:"-"`
}

// # Field Identifiers

const (
	FieldID          = "videoId"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoFile   = "videoFile"
	FieldThumbnail   = "thumbnail"
	FieldSortBy      = "sortBy"
	FieldSortType    = "sortType"
	FieldUserID      = "userId"
	FieldQuery       = "query"
)

// MaxTitleLength bounds video titles.
const MaxTitleLength = 200
