// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is enforced on registration and password change.
	MinPasswordLength = 8

	// MaxPasswordLength stays under bcrypt's 72-byte input limit.
	MaxPasswordLength = 72

	// MinUsernameLength and MaxUsernameLength bound channel handles.
	MinUsernameLength = 3
	MaxUsernameLength = 30

	// MaxFullNameLength bounds the display name.
	MaxFullNameLength = 100
)
