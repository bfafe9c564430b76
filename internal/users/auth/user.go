// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the identity entity and the session lifecycle: registration, login,
refresh-token rotation, logout and password change.

# Session Model

Each identity holds at most one live refresh token, stored as a SHA-256 digest
on the account row. Login overwrites it, refresh rotates it with a conditional
update, logout clears it. This package is the only writer of that column.
*/
package auth

import (
	"time"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/platform/blob"
)

// # Domain Entities

// User represents a registered channel on the Vidtube platform.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	AvatarURL        string    `json:"avatar"`
	CoverURL         string    `json:"coverImage,omitempty"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// OwnerID makes a user its own owner, so profile blobs go through the same cascade rules.
func (user *User) OwnerID() string { return user.ID }

// BlobRefs lists the images referenced by the account.
func (user *User) BlobRefs() []cascade.Ref {
	return []cascade.Ref{
		{URL: user.AvatarURL, Kind: blob.KindImage},
		{URL: user.CoverURL, Kind: blob.KindImage},
	}
}

// Session is the credential pair handed to a client after login or refresh.
type Session struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
	User                  *User     `json:"user,omitempty"`
}

// # Field Identifiers

// Field names for validation in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldFullName     = "fullName"
	FieldPassword     = "password"
	FieldIdentifier   = "identifier"
	FieldAvatar       = "avatar"
	FieldCoverImage   = "coverImage"
	FieldRefreshToken = "refreshToken"
	FieldOldPassword  = "oldPassword"
	FieldNewPassword  = "newPassword"
	FieldMessage      = "message"
)
