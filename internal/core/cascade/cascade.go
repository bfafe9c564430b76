// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cascade keeps database rows and blob-store objects consistent when a
resource that references blobs is deleted or has a blob replaced.

Ordering rules:

  - Delete: the row goes first. Blob deletion afterwards is best effort; a
    failure is logged and leaks an object but never fails the request.
  - Replace: upload the new object, switch the row to it, then delete the old
    object. At no point does a row reference an object that is missing.
*/
package cascade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/blob"
	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
)

// Ref is one blob reference held by a row.
type Ref struct {
	URL  string
	Kind blob.Kind
}

// Blobbed is an owned resource that references blobs.
type Blobbed interface {
	ownership.Owned
	BlobRefs() []Ref
}

// Remover deletes the row identified by id and owned by actorID, returning its
// pre-image. It returns an apperr NotFound error when no row matched.
type Remover[T Blobbed] func(ctx context.Context, id, actorID string) (T, error)

/*
Delete removes an owned resource and then releases its blobs.

Description: The ownership check is the conditional filter inside remove, so
a non-owner observes NotFound, same as a missing row.

Parameters:
  - ctx: context.Context
  - store: blob.Store
  - resource: string (e.g. "Video")
  - actorID, id: string
  - remove: Remover[T]

Returns:
  - T: The deleted pre-image
  - error: Unauthorized, NotFound, or the database failure. Blob failures never surface.
*/
func Delete[T Blobbed](ctx context.Context, store blob.Store, resource, actorID, id string, remove Remover[T]) (T, error) {
	var zero T

	if err := ownership.RequireActor(actorID); err != nil {
		return zero, err
	}

	deleted, err := remove(ctx, id, actorID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return zero, apperr.NotFound(resource)
		}
		return zero, err
	}

	Release(ctx, store, deleted.BlobRefs()...)

	return deleted, nil
}

// Release deletes every non-empty ref, logging failures at WARN.
func Release(ctx context.Context, store blob.Store, refs ...Ref) {
	logger := ctxutil.GetLogger(ctx)

	for _, ref := range refs {
		if ref.URL == "" {
			continue
		}
		if err := store.Delete(ctx, ref.URL, ref.Kind); err != nil {
			logger.WarnContext(ctx, "blob_delete_failed",
				slog.String("url", ref.URL),
				slog.String("kind", string(ref.Kind)),
				slog.Any("error", err),
			)
		}
	}
}

// Replacement describes swapping one blob field of an already authorized row.
type Replacement struct {
	// LocalPath is the spooled upload. It is consumed by the blob store.
	LocalPath string
	Kind      blob.Kind

	// Current is the url the row references now ("" when unset).
	Current string

	// Write persists the new url on the row.
	Write func(ctx context.Context, newURL string) error
}

/*
Replace uploads a new blob, switches the row to it and releases the old one.

Returns:
  - blob.Asset: The new object
  - error: Internal when the upload fails (row unchanged), or Write's error
    (the new object is released, row unchanged)
*/
func Replace(ctx context.Context, store blob.Store, replacement Replacement) (blob.Asset, error) {
	asset, err := store.Upload(ctx, replacement.LocalPath, replacement.Kind)
	if err != nil {
		return blob.Asset{}, apperr.Internal(fmt.Errorf("cascade_replace_upload_failed: %w", err))
	}

	if err := replacement.Write(ctx, asset.URL); err != nil {
		Release(ctx, store, Ref{URL: asset.URL, Kind: replacement.Kind})
		return blob.Asset{}, err
	}

	if replacement.Current != "" && replacement.Current != asset.URL {
		Release(ctx, store, Ref{URL: replacement.Current, Kind: replacement.Kind})
	}

	return asset, nil
}
