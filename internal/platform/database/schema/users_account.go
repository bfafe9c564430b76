// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidtube/internal/platform/constants"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FullName         string
	AvatarURL        string
	CoverURL         string
	Password         string
	RefreshTokenHash string
	CreatedAt        string
	UpdatedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            constants.SchemaUsers + ".account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FullName:         "fullname",
	AvatarURL:        "avatarurl",
	CoverURL:         "coverurl",
	Password:         "passwordhash",
	RefreshTokenHash: "refreshtokenhash",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

// Columns returns the public profile columns (never the secret hashes).
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.AvatarURL, t.CoverURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
