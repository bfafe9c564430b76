// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for identities and their
// refresh-token slot.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByIdentifier returns the account whose username or email equals identifier.

		Parameters:
		  - context: context.Context
		  - identifier: string (already normalized)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByIdentifier(context context.Context, identifier string) (*User, error)

	/*
		ExistsByUsernameOrEmail reports whether either handle is taken.
	*/
	ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: apperr.Conflict when username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the password hash.
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		SetRefreshTokenHash overwrites the refresh-token slot unconditionally.
	*/
	SetRefreshTokenHash(context context.Context, userID, tokenHash string) error

	/*
		RotateRefreshTokenHash swaps oldHash for newHash only if oldHash is
		still the stored value.

		Returns:
		  - bool: false when another login or refresh already replaced it
		  - error: Database failures
	*/
	RotateRefreshTokenHash(context context.Context, userID, oldHash, newHash string) (bool, error)

	/*
		ClearRefreshTokenHash empties the refresh-token slot.
	*/
	ClearRefreshTokenHash(context context.Context, userID string) error
}
