// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/blob"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
type Service struct {
	accountRepository AccountRepository
	blobs             blob.Store
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, blobs: blobs, logger: logger}
}

// # Profile Management

/*
GetCurrent retrieves the full private identity of the caller.

Returns:
  - *auth.User: The hydrated user profile
  - error: Unauthorized, NotFound or execution failures
*/
func (service *Service) GetCurrent(context context.Context, actorID string) (*auth.User, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(context, actorID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_current_failed: %w", err)
	}
	return user, nil
}

/*
UpdateDetails replaces the caller's full name and email.

Returns:
  - *auth.User: The updated profile
  - error: ValidationError, Conflict (email taken)
*/
func (service *Service) UpdateDetails(context context.Context, actorID, fullName, email string) (*auth.User, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}

	email = auth.NormalizeIdentifier(email)

	validator := &validate.Validator{}
	validator.Required(FieldFullName, fullName).
		MaxLen(FieldFullName, fullName, auth.MaxFullNameLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.UpdateDetails(context, actorID, fullName, email)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", actorID))
	return user, nil
}

// UpdateAvatar swaps the caller's avatar for the spooled image at localPath.
func (service *Service) UpdateAvatar(context context.Context, actorID, localPath string) (*auth.User, error) {
	return service.replaceImage(context, actorID, localPath, FieldAvatar,
		func(user *auth.User) string { return user.AvatarURL },
		service.accountRepository.SetAvatar,
	)
}

// UpdateCoverImage swaps the caller's cover image. Only the superseded cover is released.
func (service *Service) UpdateCoverImage(context context.Context, actorID, localPath string) (*auth.User, error) {
	return service.replaceImage(context, actorID, localPath, FieldCoverImage,
		func(user *auth.User) string { return user.CoverURL },
		service.accountRepository.SetCover,
	)
}

/*
replaceImage runs the replace cascade on one image column of the account.

Description: The account row is its own ownership boundary, so loading it by
the actor id is the guard.
*/
func (service *Service) replaceImage(
	ctx context.Context,
	actorID, localPath, field string,
	current func(*auth.User) string,
	write func(context.Context, string, string) error,
) (*auth.User, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, err
	}
	if localPath == "" {
		return nil, validate.RequiredError(field, "File is required")
	}

	user, err := service.accountRepository.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	asset, err := cascade.Replace(ctx, service.blobs, cascade.Replacement{
		LocalPath: localPath,
		Kind:      blob.KindImage,
		Current:   current(user),
		Write: func(ctx context.Context, newURL string) error {
			return write(ctx, actorID, newURL)
		},
	})
	if err != nil {
		return nil, err
	}

	if field == FieldAvatar {
		user.AvatarURL = asset.URL
	} else {
		user.CoverURL = asset.URL
	}

	service.logger.InfoContext(ctx, "user_image_replaced",
		slog.String("user_id", actorID),
		slog.String("field", field),
	)
	return user, nil
}

// # Channel Discovery

/*
ChannelProfile returns the public profile of a channel.

Parameters:
  - username: string (any case)
  - viewerID: string ("" for anonymous callers)

Returns:
  - *ChannelProfile: Profile with subscription counters
  - error: ValidationError, NotFound
*/
func (service *Service) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = auth.NormalizeIdentifier(username)
	if err := (&validate.Validator{}).Required(FieldUsername, username).Err(); err != nil {
		return nil, err
	}

	return service.accountRepository.ChannelProfile(context, username, viewerID)
}

// WatchHistory returns the caller's watch history, most recent first.
func (service *Service) WatchHistory(context context.Context, actorID string, limit, offset int) ([]*HistoryEntry, int, error) {
	if err := ownership.RequireActor(actorID); err != nil {
		return nil, 0, err
	}

	entries, total, err := service.accountRepository.WatchHistory(context, actorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_watch_history_failed: %w", err)
	}
	return entries, total, nil
}
