// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/blob"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/internal/platform/validate"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

// # Contracts & Types

// TokenIssuer defines the contract for issuing and verifying session tokens.
// [*sec.TokenCodec] satisfies it.
type TokenIssuer interface {
	IssueAccessToken(identityID string) (string, time.Time, error)
	IssueRefreshToken(identityID string) (string, time.Time, error)
	Verify(token string, kind sec.TokenKind) (string, error)
}

// RegisterInput carries a sign-up request. AvatarPath and CoverPath are spooled
// local files; the blob store consumes them.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// Service implements the session lifecycle.
//
// # Concurrency
//
// The service is stateless; the refresh-token slot on the account row is the
// only session state, and every transition on it is a single statement.
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	blobs  blob.Store
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, tokens TokenIssuer, blobs blob.Store) *Service {
	return &Service{users: users, tokens: tokens, blobs: blobs}
}

// # Registration Flow

/*
Register creates a new identity with its profile images.

Description: Validates input, rejects taken handles, uploads the avatar
(required) and cover (optional), then inserts the account. If the insert
fails the uploaded images are released.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The created identity
  - error: ValidationError, Conflict, Internal (upload failure)
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = NormalizeIdentifier(input.Username)
	input.Email = NormalizeIdentifier(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldFullName, input.FullName).
		MaxLen(FieldFullName, input.FullName, MaxFullNameLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxBytes(FieldPassword, input.Password, MaxPasswordLength).
		Required(FieldAvatar, input.AvatarPath)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.users.ExistsByUsernameOrEmail(context, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("User with email or username already exists")
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	avatar, err := service.blobs.Upload(context, input.AvatarPath, blob.KindImage)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_avatar_upload_failed: %w", err))
	}

	var cover blob.Asset
	if input.CoverPath != "" {
		cover, err = service.blobs.Upload(context, input.CoverPath, blob.KindImage)
		if err != nil {
			cascade.Release(context, service.blobs, cascade.Ref{URL: avatar.URL, Kind: blob.KindImage})
			return nil, apperr.Internal(fmt.Errorf("auth_service_cover_upload_failed: %w", err))
		}
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		AvatarURL:    avatar.URL,
		CoverURL:     cover.URL,
		PasswordHash: passwordHash,
	}

	if err := service.users.Create(context, user); err != nil {
		cascade.Release(context, service.blobs, user.BlobRefs()...)
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Session Flow

/*
Login verifies credentials and starts a new session.

Description: Any previously issued refresh token is superseded because the
slot is overwritten.

Returns:
  - *Session: Fresh token pair plus the identity
  - error: ValidationError, NotFound (no such identity), Unauthorized (wrong password)
*/
func (service *Service) Login(context context.Context, identifier, password string) (*Session, error) {
	identifier = NormalizeIdentifier(identifier)

	if err := (&validate.Validator{}).Required(FieldIdentifier, identifier).Required(FieldPassword, password).Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByIdentifier(context, identifier)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	session, err := service.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	if err := service.users.SetRefreshTokenHash(context, user.ID, sec.HashToken(session.RefreshToken)); err != nil {
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	session.User = user
	ctxutil.GetLogger(context).InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Refresh exchanges a live refresh token for a new pair.

Description: The presented token must verify, belong to an existing
identity, match the stored digest, and still match it at the moment of the
conditional rotation. Of two concurrent refreshes with the same token exactly
one succeeds.

Returns:
  - *Session: Rotated token pair
  - error: Unauthorized on any credential failure
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Refresh token required")
	}

	identityID, err := service.tokens.Verify(refreshToken, sec.KindRefresh)
	if err != nil {
		return nil, apperr.Unauthorized(refreshFailure(err))
	}

	user, err := service.users.FindByID(context, identityID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}

	if !sec.TokenMatches(refreshToken, user.RefreshTokenHash) {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	session, err := service.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	rotated, err := service.users.RotateRefreshTokenHash(context, user.ID, user.RefreshTokenHash, sec.HashToken(session.RefreshToken))
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}
	if !rotated {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	return session, nil
}

/*
Logout ends the identity's session. Calling it twice is harmless.
*/
func (service *Service) Logout(context context.Context, identityID string) error {
	if identityID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	if err := service.users.ClearRefreshTokenHash(context, identityID); err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_logged_out", slog.String("user_id", identityID))
	return nil
}

/*
ChangePassword replaces the password after checking the current one.

Description: The live refresh token is left in place, so the caller's
session survives a password change.

Returns:
  - error: ValidationError, Unauthorized (wrong old password), NotFound
*/
func (service *Service) ChangePassword(context context.Context, identityID, oldPassword, newPassword string) error {
	if identityID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, oldPassword).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength).
		MaxBytes(FieldNewPassword, newPassword, MaxPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindByID(context, identityID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.Unauthorized("Invalid old password")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("auth_service_hash_failed: %w", err))
	}

	if err := service.users.UpdatePassword(context, identityID, newHash); err != nil {
		return fmt.Errorf("auth_service_change_password_failed: %w", err)
	}
	return nil
}

// CurrentUser returns the identity behind an authenticated request.
func (service *Service) CurrentUser(context context.Context, identityID string) (*User, error) {
	if identityID == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.users.FindByID(context, identityID)
}

// # Internal Helpers

func (service *Service) issuePair(identityID string) (*Session, error) {
	access, accessExpiry, err := service.tokens.IssueAccessToken(identityID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_issue_access_failed: %w", err))
	}

	refresh, refreshExpiry, err := service.tokens.IssueRefreshToken(identityID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_issue_refresh_failed: %w", err))
	}

	return &Session{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func refreshFailure(err error) string {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return "Refresh token expired"
	case errors.Is(err, sec.ErrBadSignature):
		return "Refresh token signature invalid"
	default:
		return "Invalid refresh token"
	}
}
