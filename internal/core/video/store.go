// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import "context"

// Details is the editable part of a video row.
type Details struct {
	Title        string
	Description  string
	ThumbnailURL string
}

// Repository defines the persistence contract for videos.
type Repository interface {

	/*
		Create persists a new video row.
	*/
	Create(context context.Context, video *Video) error

	/*
		FindByID returns one video regardless of publication state.

		Returns:
		  - error: apperr.NotFound when absent
	*/
	FindByID(context context.Context, id string) (*Video, error)

	/*
		List returns a filtered page of videos and the total match count.
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Video, int, error)

	/*
		UpdateDetails writes title, description and thumbnail url in one statement.

		Returns:
		  - error: apperr.NotFound when absent
	*/
	UpdateDetails(context context.Context, id string, details Details) error

	// SetPublished writes the publication flag.
	SetPublished(context context.Context, id string, published bool) error

	/*
		DeleteOwned removes the row matching id and ownerID and returns its pre-image.

		Returns:
		  - error: apperr.NotFound when nothing matched (absent or not owned)
	*/
	DeleteOwned(context context.Context, id, ownerID string) (*Video, error)

	/*
		RecordView increments the view counter and upserts viewerID's watch
		history entry, atomically.
	*/
	RecordView(context context.Context, id, viewerID string) error
}
