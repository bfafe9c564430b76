// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

type memoryPlaylists struct {
	rows    map[string]Playlist
	entries map[string][]string
}

func newMemoryPlaylists() *memoryPlaylists {
	return &memoryPlaylists{rows: make(map[string]Playlist), entries: make(map[string][]string)}
}

func (repo *memoryPlaylists) Create(_ context.Context, playlist *Playlist) error {
	repo.rows[playlist.ID] = *playlist
	return nil
}

func (repo *memoryPlaylists) FindByID(_ context.Context, id string) (*Playlist, error) {
	playlist, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	return &playlist, nil
}

func (repo *memoryPlaylists) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*Playlist, int, error) {
	var out []*Playlist
	for _, playlist := range repo.rows {
		if playlist.Owner == ownerID {
			clone := playlist
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (repo *memoryPlaylists) UpdateDetails(_ context.Context, id, name, description string) error {
	playlist := repo.rows[id]
	playlist.Name, playlist.Description = name, description
	repo.rows[id] = playlist
	return nil
}

func (repo *memoryPlaylists) DeleteOwned(_ context.Context, id, ownerID string) (int64, error) {
	playlist, ok := repo.rows[id]
	if !ok || playlist.Owner != ownerID {
		return 0, nil
	}
	delete(repo.rows, id)
	delete(repo.entries, id)
	return 1, nil
}

func (repo *memoryPlaylists) Videos(_ context.Context, playlistID string) ([]*Entry, error) {
	entries := []*Entry{}
	for _, videoID := range repo.entries[playlistID] {
		entries = append(entries, &Entry{VideoID: videoID})
	}
	return entries, nil
}

func (repo *memoryPlaylists) AddVideo(_ context.Context, playlistID, videoID string) error {
	for _, existing := range repo.entries[playlistID] {
		if existing == videoID {
			return apperr.Conflict("Video already in playlist")
		}
	}
	repo.entries[playlistID] = append(repo.entries[playlistID], videoID)
	return nil
}

func (repo *memoryPlaylists) RemoveVideo(_ context.Context, playlistID, videoID string) (int64, error) {
	entries := repo.entries[playlistID]
	for i, existing := range entries {
		if existing == videoID {
			repo.entries[playlistID] = append(entries[:i], entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type knownVideos map[string]bool

func (videos knownVideos) Exists(_ context.Context, id, _ string) error {
	if !videos[id] {
		return apperr.NotFound("Video")
	}
	return nil
}

func TestPlaylistMembership(t *testing.T) {
	repo := newMemoryPlaylists()
	service := NewService(repo, knownVideos{"v1": true, "v2": true})
	ctx := context.Background()

	playlist, err := service.Create(ctx, "alice", "  Favourites ", "")
	require.NoError(t, err)
	assert.Equal(t, "Favourites", playlist.Name)

	require.NoError(t, service.AddVideo(ctx, "alice", playlist.ID, "v1"))
	assert.True(t, apperr.IsCode(service.AddVideo(ctx, "alice", playlist.ID, "v1"), apperr.CodeConflict))
	assert.True(t, apperr.IsNotFound(service.AddVideo(ctx, "alice", playlist.ID, "v404")))
	assert.True(t, apperr.IsCode(service.AddVideo(ctx, "bob", playlist.ID, "v2"), apperr.CodeForbidden))
	assert.True(t, apperr.IsCode(service.AddVideo(ctx, "", playlist.ID, "v2"), apperr.CodeUnauthorized))

	got, err := service.Get(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.VideoCount)

	assert.True(t, apperr.IsCode(service.RemoveVideo(ctx, "bob", playlist.ID, "v1"), apperr.CodeForbidden))
	require.NoError(t, service.RemoveVideo(ctx, "alice", playlist.ID, "v1"))
	assert.True(t, apperr.IsNotFound(service.RemoveVideo(ctx, "alice", playlist.ID, "v1")))
}

func TestPlaylistUpdateAndDelete(t *testing.T) {
	repo := newMemoryPlaylists()
	service := NewService(repo, knownVideos{})
	ctx := context.Background()

	playlist, err := service.Create(ctx, "alice", "Mix", "old")
	require.NoError(t, err)

	description := "new"
	_, err = service.Update(ctx, "bob", playlist.ID, nil, &description)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	updated, err := service.Update(ctx, "alice", playlist.ID, nil, &description)
	require.NoError(t, err)
	assert.Equal(t, "Mix", updated.Name)
	assert.Equal(t, "new", repo.rows[playlist.ID].Description)

	empty := " "
	_, err = service.Update(ctx, "alice", playlist.ID, &empty, nil)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	assert.True(t, apperr.IsNotFound(service.Delete(ctx, "bob", playlist.ID)))
	require.NoError(t, service.Delete(ctx, "alice", playlist.ID))
	assert.Empty(t, repo.rows)

	_, err = service.Get(ctx, "not-a-uuid")
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}
