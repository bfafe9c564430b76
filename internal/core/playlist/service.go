// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

const resourceName = "Playlist"

// Service orchestrates playlist use cases. Every mutation is owner-gated.
type Service struct {
	repository Repository
	videos     VideoChecker
}

// NewService constructs a new playlist [Service].
func NewService(repository Repository, videos VideoChecker) *Service {
	return &Service{repository: repository, videos: videos}
}

// Create makes an empty playlist for the caller.
func (service *Service) Create(context context.Context, actorID, name, description string) (*Playlist, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	playlist := &Playlist{ID: uuidv7.New(), Owner: actorID, Name: name, Description: description}
	if err := service.repository.Create(context, playlist); err != nil {
		return nil, fmt.Errorf("playlist_service_create_failed: %w", err)
	}
	return playlist, nil
}

/*
Get returns a playlist with its videos.

Returns:
  - error: ValidationError (bad id), NotFound
*/
func (service *Service) Get(context context.Context, id string) (*Playlist, error) {
	if err := (&validate.Validator{}).UUID(FieldPlaylistID, id).Err(); err != nil {
		return nil, err
	}

	playlist, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	videos, err := service.repository.Videos(context, id)
	if err != nil {
		return nil, fmt.Errorf("playlist_service_get_failed: %w", err)
	}

	playlist.Videos = videos
	playlist.VideoCount = len(videos)
	return playlist, nil
}

// ListByOwner returns a page of a channel's playlists.
func (service *Service) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Playlist, int, error) {
	if err := (&validate.Validator{}).UUID(FieldUserID, ownerID).Err(); err != nil {
		return nil, 0, err
	}
	return service.repository.ListByOwner(context, ownerID, limit, offset)
}

// Update renames or re-describes an owned playlist (load-check-write).
func (service *Service) Update(context context.Context, actorID, id string, name, description *string) (*Playlist, error) {
	playlist, err := ownership.Authorize(context, actorID, resourceName, id, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		playlist.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		playlist.Description = *description
	}
	if err := validateName(playlist.Name); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateDetails(context, id, playlist.Name, playlist.Description); err != nil {
		return nil, fmt.Errorf("playlist_service_update_failed: %w", err)
	}
	return playlist, nil
}

// Delete removes an owned playlist with one conditional statement.
func (service *Service) Delete(context context.Context, actorID, id string) error {
	if err := ownership.RequireActor(actorID); err != nil {
		return err
	}

	affected, err := service.repository.DeleteOwned(context, id, actorID)
	if err != nil {
		return fmt.Errorf("playlist_service_delete_failed: %w", err)
	}
	return ownership.Confirm(resourceName, affected)
}

/*
AddVideo appends a visible video to an owned playlist.

Returns:
  - error: Forbidden (not the owner), NotFound (playlist or video), Conflict (already present)
*/
func (service *Service) AddVideo(context context.Context, actorID, playlistID, videoID string) error {
	if _, err := ownership.Authorize(context, actorID, resourceName, playlistID, service.repository.FindByID); err != nil {
		return err
	}

	if err := service.videos.Exists(context, videoID, actorID); err != nil {
		return err
	}

	return service.repository.AddVideo(context, playlistID, videoID)
}

// RemoveVideo takes a video out of an owned playlist. A video that is not in
// the playlist is NotFound.
func (service *Service) RemoveVideo(context context.Context, actorID, playlistID, videoID string) error {
	if _, err := ownership.Authorize(context, actorID, resourceName, playlistID, service.repository.FindByID); err != nil {
		return err
	}

	affected, err := service.repository.RemoveVideo(context, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("playlist_service_remove_video_failed: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("Video in playlist")
	}
	return nil
}

func validateName(name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	return validator.Err()
}
