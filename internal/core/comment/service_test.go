// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

type memoryComments map[string]Comment

func (repo memoryComments) Create(_ context.Context, comment *Comment) error {
	repo[comment.ID] = *comment
	return nil
}

func (repo memoryComments) FindByID(_ context.Context, id string) (*Comment, error) {
	comment, ok := repo[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return &comment, nil
}

func (repo memoryComments) ListByVideo(_ context.Context, videoID string, _, _ int) ([]*Comment, int, error) {
	var out []*Comment
	for _, comment := range repo {
		if comment.VideoID == videoID {
			clone := comment
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (repo memoryComments) UpdateContent(_ context.Context, id, content string) error {
	comment := repo[id]
	comment.Content = content
	repo[id] = comment
	return nil
}

func (repo memoryComments) DeleteOwned(_ context.Context, id, ownerID string) (int64, error) {
	comment, ok := repo[id]
	if !ok || comment.Owner != ownerID {
		return 0, nil
	}
	delete(repo, id)
	return 1, nil
}

type knownVideos map[string]bool

func (videos knownVideos) Exists(_ context.Context, id, _ string) error {
	if !videos[id] {
		return apperr.NotFound("Video")
	}
	return nil
}

func TestCommentLifecycle(t *testing.T) {
	repo := memoryComments{}
	service := NewService(repo, knownVideos{"v1": true})
	ctx := context.Background()

	comment, err := service.Add(ctx, "alice", "v1", "  nice video  ")
	require.NoError(t, err)
	assert.Equal(t, "nice video", comment.Content)

	_, err = service.Add(ctx, "alice", "v404", "hello")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Add(ctx, "alice", "v1", "   ")
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))

	_, err = service.Add(ctx, "", "v1", "hello")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	_, err = service.Update(ctx, "bob", comment.ID, "hijacked")
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	assert.Equal(t, "nice video", repo[comment.ID].Content)

	updated, err := service.Update(ctx, "alice", comment.ID, "great video")
	require.NoError(t, err)
	assert.Equal(t, "great video", updated.Content)

	comments, total, err := service.ListByVideo(ctx, "v1", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, comments, 1)

	assert.True(t, apperr.IsNotFound(service.Delete(ctx, "bob", comment.ID)))
	assert.Contains(t, repo, comment.ID)

	require.NoError(t, service.Delete(ctx, "alice", comment.ID))
	assert.True(t, apperr.IsNotFound(service.Delete(ctx, "alice", comment.ID)))
}
