// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cascade_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/core/cascade"
	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/blob"
)

type clip struct {
	id        string
	owner     string
	videoURL  string
	thumbnail string
}

func (c *clip) OwnerID() string { return c.owner }

func (c *clip) BlobRefs() []cascade.Ref {
	return []cascade.Ref{
		{URL: c.thumbnail, Kind: blob.KindImage},
		{URL: c.videoURL, Kind: blob.KindVideo},
	}
}

// rows is a tiny table with a conditional delete keyed by id AND owner.
type rows map[string]*clip

func (r rows) remove(_ context.Context, id, actorID string) (*clip, error) {
	row, ok := r[id]
	if !ok || row.owner != actorID {
		return nil, apperr.NotFound("row")
	}
	delete(r, id)
	return row, nil
}

// flakyStore fails deletes of one specific url.
type flakyStore struct {
	*blob.MemoryStore
	failURL string
}

func (s *flakyStore) Delete(ctx context.Context, url string, kind blob.Kind) error {
	if url == s.failURL {
		return errors.New("blob store unavailable")
	}
	return s.MemoryStore.Delete(ctx, url, kind)
}

func seed() (rows, *blob.MemoryStore) {
	store := blob.NewMemoryStore(0)
	store.Put("mem://videos/1", blob.KindVideo)
	store.Put("mem://images/1", blob.KindImage)

	table := rows{"v1": {id: "v1", owner: "owner", videoURL: "mem://videos/1", thumbnail: "mem://images/1"}}
	return table, store
}

func TestDelete_RemovesRowAndBlobs(t *testing.T) {
	table, store := seed()

	deleted, err := cascade.Delete(context.Background(), store, "Video", "owner", "v1", table.remove)
	require.NoError(t, err)

	assert.Equal(t, "v1", deleted.id)
	assert.Empty(t, table)
	assert.Equal(t, 0, store.Len())
}

func TestDelete_BlobFailureDoesNotFailOrResurrectRow(t *testing.T) {
	table, memory := seed()
	store := &flakyStore{MemoryStore: memory, failURL: "mem://images/1"}

	_, err := cascade.Delete(context.Background(), store, "Video", "owner", "v1", table.remove)
	require.NoError(t, err)

	assert.Empty(t, table, "row must be gone regardless of blob outcome")
	assert.False(t, memory.Exists("mem://videos/1"))
	assert.True(t, memory.Exists("mem://images/1"), "failed delete leaks the object")
}

func TestDelete_NonOwnerSeesNotFound(t *testing.T) {
	table, store := seed()

	_, err := cascade.Delete(context.Background(), store, "Video", "intruder", "v1", table.remove)

	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	assert.Len(t, table, 1)
	assert.Equal(t, 2, store.Len())
}

func TestDelete_Anonymous(t *testing.T) {
	table, store := seed()

	_, err := cascade.Delete(context.Background(), store, "Video", "", "v1", table.remove)

	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	assert.Len(t, table, 1)
}

func TestReplace_SwitchesThenReleasesOld(t *testing.T) {
	store := blob.NewMemoryStore(0)
	store.Put("mem://images/old", blob.KindImage)
	stored := "mem://images/old"

	asset, err := cascade.Replace(context.Background(), store, cascade.Replacement{
		Kind:    blob.KindImage,
		Current: stored,
		Write: func(_ context.Context, newURL string) error {
			stored = newURL
			return nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, asset.URL, stored)
	assert.True(t, store.Exists(stored))
	assert.False(t, store.Exists("mem://images/old"))
}

func TestReplace_UploadFailureKeepsOriginal(t *testing.T) {
	store := blob.NewMemoryStore(0)
	store.Put("mem://images/old", blob.KindImage)
	store.FailUpload = true
	stored := "mem://images/old"

	_, err := cascade.Replace(context.Background(), store, cascade.Replacement{
		Kind:    blob.KindImage,
		Current: stored,
		Write: func(_ context.Context, newURL string) error {
			stored = newURL
			return nil
		},
	})

	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
	assert.Equal(t, "mem://images/old", stored)
	assert.True(t, store.Exists(stored))
}

func TestReplace_WriteFailureReleasesNewBlob(t *testing.T) {
	store := blob.NewMemoryStore(0)
	store.Put("mem://images/old", blob.KindImage)
	writeErr := errors.New("db down")

	_, err := cascade.Replace(context.Background(), store, cascade.Replacement{
		Kind:    blob.KindImage,
		Current: "mem://images/old",
		Write:   func(context.Context, string) error { return writeErr },
	})

	assert.ErrorIs(t, err, writeErr)
	assert.True(t, store.Exists("mem://images/old"))
	assert.Equal(t, 1, store.Len(), "uploaded replacement must be released")
}
