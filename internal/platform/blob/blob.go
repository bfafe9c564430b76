// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blob is the external media store for avatars, covers, thumbnails and
video files.

Contract:

  - Upload takes a spooled local file, stores it and returns a public URL. The
    local file is removed whether the upload succeeds or not.
  - Delete removes a stored object by its URL. Deleting an object that no
    longer exists succeeds.

Callers never hold a blob handle, only the URL persisted on their entity.
*/
package blob

import (
	"context"
	"errors"
)

// Kind selects the storage prefix and whether duration probing applies.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ErrForeignURL is returned by Delete for URLs this store did not issue.
var ErrForeignURL = errors.New("blob: url not managed by this store")

// Asset is the result of a successful upload.
type Asset struct {
	URL string

	// DurationSeconds is set for [KindVideo] uploads only.
	DurationSeconds float64
}

// Store is the blob storage contract used by the cascade coordinator and services.
type Store interface {
	Upload(ctx context.Context, localPath string, kind Kind) (Asset, error)
	Delete(ctx context.Context, url string, kind Kind) error
}

// DurationProber reports the playback length of a local media file.
type DurationProber interface {
	Probe(ctx context.Context, localPath string) (float64, error)
}

func prefixFor(kind Kind) string {
	if kind == KindVideo {
		return "videos"
	}
	return "images"
}
