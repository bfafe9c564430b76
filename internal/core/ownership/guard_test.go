// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ownership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/core/ownership"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

type note struct {
	id    string
	owner string
}

func (n *note) OwnerID() string { return n.owner }

func loaderOf(items ...*note) ownership.Loader[*note] {
	return func(_ context.Context, id string) (*note, error) {
		for _, item := range items {
			if item.id == id {
				return item, nil
			}
		}
		return nil, apperr.NotFound("row")
	}
}

func TestAuthorize(t *testing.T) {
	load := loaderOf(&note{id: "n1", owner: "alice"})

	tests := []struct {
		name     string
		actor    string
		id       string
		wantCode string
	}{
		{"owner", "alice", "n1", ""},
		{"non_owner", "bob", "n1", apperr.CodeForbidden},
		{"anonymous", "", "n1", apperr.CodeUnauthorized},
		{"absent", "alice", "missing", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ownership.Authorize(context.Background(), tt.actor, "Note", tt.id, load)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "n1", item.id)
				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
			assert.Nil(t, item)
		})
	}
}

func TestAuthorize_NotFoundUsesResourceName(t *testing.T) {
	_, err := ownership.Authorize(context.Background(), "alice", "Playlist", "x", loaderOf())

	require.Error(t, err)
	assert.Equal(t, "Playlist not found", err.Error())
}

func TestAuthorize_PropagatesLoaderFailure(t *testing.T) {
	boom := errors.New("connection reset")
	load := func(context.Context, string) (*note, error) { return nil, boom }

	_, err := ownership.Authorize(context.Background(), "alice", "Note", "n1", load)

	assert.ErrorIs(t, err, boom)
}

func TestConfirm(t *testing.T) {
	assert.NoError(t, ownership.Confirm("Tweet", 1))

	err := ownership.Confirm("Tweet", 0)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}
