// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

const resourceName = "Tweet"

// Service orchestrates tweet use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new tweet [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Create posts a tweet on the caller's channel.
func (service *Service) Create(context context.Context, actorID, content string) (*Tweet, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	tweet := &Tweet{ID: uuidv7.New(), Owner: actorID, Content: content}
	if err := service.repository.Create(context, tweet); err != nil {
		return nil, fmt.Errorf("tweet_service_create_failed: %w", err)
	}
	return tweet, nil
}

// ListByOwner returns a page of a channel's tweets, newest first.
func (service *Service) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error) {
	if err := (&validate.Validator{}).UUID(FieldUserID, ownerID).Err(); err != nil {
		return nil, 0, err
	}
	return service.repository.ListByOwner(context, ownerID, limit, offset)
}

// Update rewrites an owned tweet (load-check-write).
func (service *Service) Update(context context.Context, actorID, id, content string) (*Tweet, error) {
	tweet, err := ownership.Authorize(context, actorID, resourceName, id, service.repository.FindByID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	if err := service.repository.UpdateContent(context, id, content); err != nil {
		return nil, fmt.Errorf("tweet_service_update_failed: %w", err)
	}

	tweet.Content = content
	return tweet, nil
}

// Delete removes an owned tweet with one conditional statement.
func (service *Service) Delete(context context.Context, actorID, id string) error {
	if err := ownership.RequireActor(actorID); err != nil {
		return err
	}

	affected, err := service.repository.DeleteOwned(context, id, actorID)
	if err != nil {
		return fmt.Errorf("tweet_service_delete_failed: %w", err)
	}
	return ownership.Confirm(resourceName, affected)
}

func validateContent(content string) error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLength)
	return validator.Err()
}
