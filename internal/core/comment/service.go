// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

const resourceName = "Comment"

// Service orchestrates comment use cases.
type Service struct {
	repository Repository
	videos     VideoChecker
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, videos VideoChecker) *Service {
	return &Service{repository: repository, videos: videos}
}

/*
Add posts a comment on a video the caller can see.

Returns:
  - *Comment: The created comment
  - error: Unauthorized, ValidationError, NotFound (video)
*/
func (service *Service) Add(context context.Context, actorID, videoID, content string) (*Comment, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if err := service.videos.Exists(context, videoID, actorID); err != nil {
		return nil, err
	}

	comment := &Comment{ID: uuidv7.New(), VideoID: videoID, Owner: actorID, Content: content}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_add_failed: %w", err)
	}
	return comment, nil
}

// ListByVideo returns a page of comments on a visible video.
func (service *Service) ListByVideo(context context.Context, videoID, viewerID string, limit, offset int) ([]*Comment, int, error) {
	if err := service.videos.Exists(context, videoID, viewerID); err != nil {
		return nil, 0, err
	}
	return service.repository.ListByVideo(context, videoID, limit, offset)
}

/*
Update rewrites the content of an owned comment.

Returns:
  - error: Unauthorized, NotFound, Forbidden, ValidationError
*/
func (service *Service) Update(context context.Context, actorID, id, content string) (*Comment, error) {
	comment, err := ownership.Authorize(context, actorID, resourceName, id, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateContent(context, id, content); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	comment.Content = content
	return comment, nil
}

// Delete removes an owned comment. Absent and foreign comments are both NotFound.
func (service *Service) Delete(context context.Context, actorID, id string) error {
	if err := ownership.RequireActor(actorID); err != nil {
		return err
	}

	affected, err := service.repository.DeleteOwned(context, id, actorID)
	if err != nil {
		return fmt.Errorf("comment_service_delete_failed: %w", err)
	}
	return ownership.Confirm(resourceName, affected)
}

func validateContent(content string) error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLength)
	return validator.Err()
}
