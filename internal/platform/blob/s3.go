// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/vidtube/internal/platform/ctxutil"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

const uploadPartSize = 8 * 1024 * 1024

// S3Config describes the S3-compatible bucket backing the store.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// objectUploader is satisfied by [*manager.Uploader].
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// objectDeleter is satisfied by [*s3.Client].
type objectDeleter interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store implements [Store] on an S3-compatible service.
type S3Store struct {
	uploader objectUploader
	deleter  objectDeleter
	prober   DurationProber
	bucket   string
	baseURL  string
}

// NewS3Store configures the S3 client and multipart uploader.
//
// Static credentials are used when both keys are set; otherwise the default
// AWS credential chain applies.
func NewS3Store(context context.Context, cfg S3Config, prober DurationProber) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("blob: bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = uploadPartSize
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL(cfg)
	}

	return newS3Store(uploader, client, prober, cfg.Bucket, baseURL), nil
}

func newS3Store(uploader objectUploader, deleter objectDeleter, prober DurationProber, bucket, baseURL string) *S3Store {
	return &S3Store{
		uploader: uploader,
		deleter:  deleter,
		prober:   prober,
		bucket:   bucket,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

/*
Upload stores the file at localPath and returns its public URL.

Description: Video uploads are probed for duration before the transfer. The
local file is removed on every path.

Parameters:
  - context: context.Context
  - localPath: string (spooled multipart file)
  - kind: Kind

Returns:
  - Asset: Public URL (+ duration for videos)
  - error: Open, probe or transfer failures
*/
func (store *S3Store) Upload(context context.Context, localPath string, kind Kind) (Asset, error) {
	defer removeLocal(context, localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return Asset{}, fmt.Errorf("blob_open_failed: %w", err)
	}
	defer file.Close()

	asset := Asset{}
	if kind == KindVideo && store.prober != nil {
		duration, err := store.prober.Probe(context, localPath)
		if err != nil {
			return Asset{}, fmt.Errorf("blob_probe_failed: %w", err)
		}
		asset.DurationSeconds = duration
	}

	key := prefixFor(kind) + "/" + uuidv7.New() + strings.ToLower(filepath.Ext(localPath))

	input := &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
		Body:   file,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(localPath)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := store.uploader.Upload(context, input); err != nil {
		return Asset{}, fmt.Errorf("blob_upload_failed: %w", err)
	}

	asset.URL = store.baseURL + "/" + key
	return asset, nil
}

/*
Delete removes the object addressed by url.

S3 DeleteObject succeeds for missing keys, which gives the idempotent
contract for free.
*/
func (store *S3Store) Delete(context context.Context, url string, kind Kind) error {
	key, ok := strings.CutPrefix(url, store.baseURL+"/")
	if !ok || key == "" {
		return ErrForeignURL
	}

	_, err := store.deleter.DeleteObject(context, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("blob_delete_failed: %s %s: %w", kind, key, err)
	}
	return nil
}

func defaultBaseURL(cfg S3Config) string {
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func removeLocal(context context.Context, localPath string) {
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		ctxutil.GetLogger(context).WarnContext(context, "blob_spool_cleanup_failed",
			slog.String("path", localPath),
			slog.Any("error", err),
		)
	}
}
