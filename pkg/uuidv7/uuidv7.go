// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates and checks the identifiers used as primary keys
// by every Vidtube table (accounts, videos, comments, tweets, playlists and
// relation edges). Version 7 values sort by creation time, which keeps btree
// inserts append-mostly.
package uuidv7

import "github.com/google/uuid"

// canonicalLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalLength = 36

// New returns a fresh UUIDv7 in canonical form.
//
// It panics only when the OS random source fails, which the process cannot
// recover from anyway.
func New() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Valid reports whether s is a UUID in canonical hyphenated form. Braced and
// urn-prefixed spellings, which uuid.Parse tolerates, are rejected so ids in
// URLs have exactly one spelling.
func Valid(s string) bool {
	if len(s) != canonicalLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
