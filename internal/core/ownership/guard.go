// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ownership implements the single authorization rule shared by every
user-owned resource (video, comment, tweet, playlist): the acting identity
must be the resource's owner.

Two enforcement strategies are offered:

  - [Authorize]: load, compare, then let the caller write. Used when the write
    depends on the loaded pre-image (content edits, blob replacement).
  - [Confirm]: interpret the affected-row count of a single conditional write
    filtered by id AND owner. A miss is reported as NotFound whether the row
    is absent or owned by someone else.
*/
package ownership

import (
	"context"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// Owned is the capability every guarded resource exposes.
type Owned interface {
	OwnerID() string
}

// Loader fetches a resource by id. It must return an apperr NotFound error when
// the resource is absent.
type Loader[T Owned] func(ctx context.Context, id string) (T, error)

// RequireActor fails with Unauthorized when no identity is attached to the call.
func RequireActor(actorID string) error {
	if actorID == "" {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

/*
Authorize loads the resource and checks that actorID owns it.

Parameters:
  - ctx: context.Context
  - actorID: string (authenticated identity, "" when anonymous)
  - resource: string (human name used in NotFound messages, e.g. "Video")
  - id: string
  - load: Loader[T]

Returns:
  - T: The loaded pre-image, safe to mutate and write back
  - error: Unauthorized, NotFound, Forbidden, or the loader's failure
*/
func Authorize[T Owned](ctx context.Context, actorID, resource, id string, load Loader[T]) (T, error) {
	var zero T

	if err := RequireActor(actorID); err != nil {
		return zero, err
	}

	item, err := load(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return zero, apperr.NotFound(resource)
		}
		return zero, err
	}

	if item.OwnerID() != actorID {
		return zero, apperr.Forbidden("You do not own this " + lowerFirst(resource))
	}

	return item, nil
}

// Confirm maps the row count of a conditional (id AND owner) write to an outcome.
func Confirm(resource string, affected int64) error {
	if affected == 0 {
		return apperr.NotFound(resource)
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
