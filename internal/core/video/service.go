// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/blob"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

const resourceName = "Video"

// PublishInput carries a new upload. Both paths are spooled local files.
type PublishInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

// UpdateInput carries a partial metadata change. ThumbnailPath is optional.
type UpdateInput struct {
	Title         *string
	Description   *string
	ThumbnailPath string
}

// # Service Layer

// Service orchestrates the video catalogue.
type Service struct {
	repository Repository
	blobs      blob.Store
}

// NewService constructs a new video [Service].
func NewService(repository Repository, blobs blob.Store) *Service {
	return &Service{repository: repository, blobs: blobs}
}

/*
Publish uploads both blobs and creates an unpublished video.

Description: Both files upload concurrently. The duration comes from the blob
store's probe of the video file. If either upload or the insert fails, every
object already uploaded is released.

Parameters:
  - context: context.Context
  - actorID: string
  - input: PublishInput

Returns:
  - *Video: The created video
  - error: Unauthorized, ValidationError, Internal (upload failure)
*/
func (service *Service) Publish(context context.Context, actorID string, input PublishInput) (*Video, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldDescription, input.Description).
		Required(FieldVideoFile, input.VideoPath).
		Required(FieldThumbnail, input.ThumbnailPath)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var file, thumbnail blob.Asset
	uploads, uploadCtx := errgroup.WithContext(context)
	uploads.Go(func() (err error) {
		if file, err = service.blobs.Upload(uploadCtx, input.VideoPath, blob.KindVideo); err != nil {
			return fmt.Errorf("video_service_upload_file_failed: %w", err)
		}
		return nil
	})
	uploads.Go(func() (err error) {
		if thumbnail, err = service.blobs.Upload(uploadCtx, input.ThumbnailPath, blob.KindImage); err != nil {
			return fmt.Errorf("video_service_upload_thumbnail_failed: %w", err)
		}
		return nil
	})
	if err := uploads.Wait(); err != nil {
		cascade.Release(context, service.blobs,
			cascade.Ref{URL: file.URL, Kind: blob.KindVideo},
			cascade.Ref{URL: thumbnail.URL, Kind: blob.KindImage},
		)
		return nil, apperr.Internal(err)
	}

	video := &Video{
		ID:              uuidv7.New(),
		Owner:           actorID,
		VideoFileURL:    file.URL,
		ThumbnailURL:    thumbnail.URL,
		Title:           input.Title,
		Description:     input.Description,
		DurationSeconds: file.DurationSeconds,
	}

	if err := service.repository.Create(context, video); err != nil {
		cascade.Release(context, service.blobs, video.BlobRefs()...)
		return nil, fmt.Errorf("video_service_publish_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "video_published",
		slog.String("video_id", video.ID),
		slog.Float64("duration", video.DurationSeconds),
	)
	return video, nil
}

/*
Get returns a video and, for an authenticated viewer, records the view.

Description: Unpublished videos are visible to their owner only. A failure
to record the view is logged and does not fail the read.

Parameters:
  - viewerID: string ("" for anonymous)
*/
func (service *Service) Get(context context.Context, id, viewerID string) (*Video, error) {
	video, err := service.visible(context, id, viewerID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		if err := service.repository.RecordView(context, id, viewerID); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "video_view_record_failed",
				slog.String("video_id", id),
				slog.Any("error", err),
			)
		} else {
			video.ViewCount++
		}
	}

	return video, nil
}

// List returns a page of videos. Unpublished rows are included only when a
// viewer lists their own channel.
func (service *Service) List(context context.Context, filter Filter, viewerID string, limit, offset int) ([]*Video, int, error) {
	validator := &validate.Validator{}
	if filter.SortBy != "" {
		validator.OneOf(FieldSortBy, filter.SortBy, SortCreatedAt, SortViews, SortDuration, SortTitle)
	}
	if filter.SortType != "" {
		validator.OneOf(FieldSortType, filter.SortType, "asc", "desc")
	}
	if filter.OwnerID != "" {
		validator.UUID(FieldUserID, filter.OwnerID)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	filter.IncludeUnpublished = viewerID != "" && filter.OwnerID == viewerID

	videos, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("video_service_list_failed: %w", err)
	}
	return videos, total, nil
}

/*
UpdateDetails edits title and description and optionally swaps the thumbnail.

Description: Load-check-write. With a new thumbnail the replace cascade uploads
first, then writes metadata and the new url in one update, then releases the
previous thumbnail. A failed upload leaves the row untouched.

Returns:
  - *Video: The updated video
  - error: Unauthorized, NotFound, Forbidden, ValidationError, Internal
*/
func (service *Service) UpdateDetails(context context.Context, actorID, id string, input UpdateInput) (*Video, error) {
	video, err := ownership.Authorize[*Video](context, actorID, resourceName, id, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, video.Title).
		MaxLen(FieldTitle, video.Title, MaxTitleLength).
		Required(FieldDescription, video.Description)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	details := Details{Title: video.Title, Description: video.Description, ThumbnailURL: video.ThumbnailURL}

	if input.ThumbnailPath == "" {
		if input.Title != nil || input.Description != nil {
			if err := service.repository.UpdateDetails(context, id, details); err != nil {
				return nil, fmt.Errorf("video_service_update_failed: %w", err)
			}
		}
		return video, nil
	}

	asset, err := cascade.Replace(context, service.blobs, cascade.Replacement{
		LocalPath: input.ThumbnailPath,
		Kind:      blob.KindImage,
		Current:   video.ThumbnailURL,
		Write:     service.detailsWriter(id, details),
	})
	if err != nil {
		return nil, err
	}
	video.ThumbnailURL = asset.URL

	return video, nil
}

/*
Delete removes an owned video and releases its thumbnail and video file.

Description: The row delete is conditional on the owner, so a non-owner
observes NotFound. Blob failures are logged, never returned.
*/
func (service *Service) Delete(context context.Context, actorID, id string) (*Video, error) {
	deleted, err := cascade.Delete[*Video](context, service.blobs, resourceName, actorID, id, service.repository.DeleteOwned)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "video_deleted", slog.String("video_id", id))
	return deleted, nil
}

// TogglePublish flips the publication flag of an owned video.
func (service *Service) TogglePublish(context context.Context, actorID, id string) (*Video, error) {
	video, err := ownership.Authorize[*Video](context, actorID, resourceName, id, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := service.repository.SetPublished(context, id, video.IsPublished); err != nil {
		return nil, fmt.Errorf("video_service_toggle_publish_failed: %w", err)
	}
	return video, nil
}

// Exists reports whether a video is visible to viewerID. Comments and
// playlists use it to validate references.
func (service *Service) Exists(context context.Context, id, viewerID string) error {
	_, err := service.visible(context, id, viewerID)
	return err
}

// # Internal Helpers

func (service *Service) visible(context context.Context, id, viewerID string) (*Video, error) {
	if err := (&validate.Validator{}).UUID(FieldID, id).Err(); err != nil {
		return nil, err
	}

	video, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound(resourceName)
		}
		return nil, fmt.Errorf("video_service_get_failed: %w", err)
	}

	if !video.IsPublished && video.Owner != viewerID {
		return nil, apperr.NotFound(resourceName)
	}
	return video, nil
}

func (service *Service) detailsWriter(id string, details Details) func(ctx context.Context, url string) error {
	return func(ctx context.Context, url string) error {
		details.ThumbnailURL = url
		return service.repository.UpdateDetails(ctx, id, details)
	}
}
