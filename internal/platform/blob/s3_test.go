// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	keys []string
	body string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	f.keys = append(f.keys, aws.ToString(input.Key))
	return &manager.UploadOutput{}, nil
}

type fakeDeleter struct {
	keys []string
	err  error
}

func (f *fakeDeleter) DeleteObject(_ context.Context, input *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, aws.ToString(input.Key))
	return &s3.DeleteObjectOutput{}, nil
}

type fixedProber float64

func (p fixedProber) Probe(context.Context, string) (float64, error) { return float64(p), nil }

func spool(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestS3Store_UploadVideo(t *testing.T) {
	uploader := &fakeUploader{}
	store := newS3Store(uploader, &fakeDeleter{}, fixedProber(42.5), "media", "https://cdn.example.com/")

	path := spool(t, "clip.mp4", "frames")
	asset, err := store.Upload(context.Background(), path, KindVideo)
	require.NoError(t, err)

	require.Len(t, uploader.keys, 1)
	assert.True(t, strings.HasPrefix(uploader.keys[0], "videos/"))
	assert.True(t, strings.HasSuffix(uploader.keys[0], ".mp4"))
	assert.Equal(t, "frames", uploader.body)
	assert.Equal(t, "https://cdn.example.com/"+uploader.keys[0], asset.URL)
	assert.InDelta(t, 42.5, asset.DurationSeconds, 0.0001)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "spooled file must be removed")
}

func TestS3Store_UploadFailureStillRemovesSpool(t *testing.T) {
	store := newS3Store(&fakeUploader{err: errors.New("network")}, &fakeDeleter{}, nil, "media", "https://cdn.example.com")

	path := spool(t, "avatar.png", "px")
	_, err := store.Upload(context.Background(), path, KindImage)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestS3Store_Delete(t *testing.T) {
	deleter := &fakeDeleter{}
	store := newS3Store(&fakeUploader{}, deleter, nil, "media", "https://cdn.example.com")

	require.NoError(t, store.Delete(context.Background(), "https://cdn.example.com/images/abc.png", KindImage))
	assert.Equal(t, []string{"images/abc.png"}, deleter.keys)

	err := store.Delete(context.Background(), "https://elsewhere.example.com/x.png", KindImage)
	assert.ErrorIs(t, err, ErrForeignURL)
}

func TestFFProbe_ParsesDuration(t *testing.T) {
	probe := NewFFProbe("")
	probe.Run = func(_ context.Context, binary string, args ...string) ([]byte, error) {
		assert.Equal(t, "ffprobe", binary)
		assert.Equal(t, "/tmp/a.mp4", args[len(args)-1])
		return []byte(`{"format":{"duration":"12.480000"}}`), nil
	}

	duration, err := probe.Probe(context.Background(), "/tmp/a.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, duration, 0.0001)
}

func TestFFProbe_InvalidOutput(t *testing.T) {
	probe := NewFFProbe("ffprobe")
	probe.Run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte(`{"format":{}}`), nil
	}

	_, err := probe.Probe(context.Background(), "/tmp/a.mp4")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(3)

	asset, err := store.Upload(context.Background(), "", KindVideo)
	require.NoError(t, err)
	assert.True(t, store.Exists(asset.URL))
	assert.InDelta(t, 3.0, asset.DurationSeconds, 0.0001)

	require.NoError(t, store.Delete(context.Background(), asset.URL, KindVideo))
	require.NoError(t, store.Delete(context.Background(), asset.URL, KindVideo))
	assert.False(t, store.Exists(asset.URL))

	store.FailDelete = true
	assert.ErrorIs(t, store.Delete(context.Background(), "mem://x", KindImage), ErrInjected)
}
