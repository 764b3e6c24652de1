package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 rejects multipart parts smaller than this, except the last one.
const minPartSize = 5 * 1024 * 1024

// S3Config holds configuration for S3 storage.
type S3Config struct {
	Region string

	// Endpoint overrides the AWS endpoint (MinIO, LocalStack).
	Endpoint string

	// UsePathStyle addresses the bucket in the path instead of the host.
	UsePathStyle bool

	// PartSize is the multipart threshold and part length in bytes.
	PartSize int64

	// MaxRetries bounds retries of a failed request. Missing objects are
	// never retried.
	MaxRetries int
}

// DefaultS3Config returns the default S3 configuration.
func DefaultS3Config() S3Config {
	return S3Config{
		Region:     "us-east-1",
		PartSize:   16 * 1024 * 1024,
		MaxRetries: 3,
	}
}

// S3Storage implements ObjectStorage on an S3 bucket.
type S3Storage struct {
	client *s3.Client
	bucket string
	cfg    S3Config
}

// NewS3Storage loads the default AWS credential chain and connects to bucket.
func NewS3Storage(ctx context.Context, bucket string, cfg S3Config) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: s3 bucket is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewS3StorageWithClient(client, bucket, cfg), nil
}

// NewS3StorageWithClient wraps a pre-configured client.
func NewS3StorageWithClient(client *s3.Client, bucket string, cfg S3Config) *S3Storage {
	if cfg.PartSize < minPartSize {
		cfg.PartSize = minPartSize
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &S3Storage{client: client, bucket: bucket, cfg: cfg}
}

// Put uploads body in one request, or in parts once size exceeds PartSize.
func (s *S3Storage) Put(ctx context.Context, objectPath string, body io.ReadSeeker, size int64) (string, error) {
	if size > s.cfg.PartSize {
		etag, err := s.putMultipart(ctx, objectPath, body, size)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrPutFailed, objectPath, err)
		}
		return etag, nil
	}

	var etag string
	err := s.retry(ctx, func() error {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return err
		}
		out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(objectPath),
			Body:          body,
			ContentLength: aws.Int64(size),
		})
		if err != nil {
			return err
		}
		etag = unquote(out.ETag)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPutFailed, objectPath, err)
	}
	return etag, nil
}

// putMultipart reads one part at a time into memory so each part can be
// retried on its own.
func (s *S3Storage) putMultipart(ctx context.Context, objectPath string, body io.ReadSeeker, size int64) (string, error) {
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	created, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectPath),
	})
	if err != nil {
		return "", err
	}
	uploadID := created.UploadId

	abort := func(cause error) (string, error) {
		_, _ = s.client.AbortMultipartUpload(context.WithoutCancel(ctx), &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(s.bucket),
			Key:      aws.String(objectPath),
			UploadId: uploadID,
		})
		return "", cause
	}

	var (
		parts []types.CompletedPart
		buf   = make([]byte, s.cfg.PartSize)
	)
	for partNum, remaining := int32(1), size; remaining > 0; partNum++ {
		n := min(remaining, s.cfg.PartSize)
		if _, err := io.ReadFull(body, buf[:n]); err != nil {
			return abort(fmt.Errorf("read part %d: %w", partNum, err))
		}
		remaining -= n

		var partETag *string
		err := s.retry(ctx, func() error {
			out, err := s.client.UploadPart(ctx, &s3.UploadPartInput{
				Bucket:        aws.String(s.bucket),
				Key:           aws.String(objectPath),
				UploadId:      uploadID,
				PartNumber:    aws.Int32(partNum),
				Body:          bytes.NewReader(buf[:n]),
				ContentLength: aws.Int64(n),
			})
			if err != nil {
				return err
			}
			partETag = out.ETag
			return nil
		})
		if err != nil {
			return abort(fmt.Errorf("upload part %d: %w", partNum, err))
		}
		parts = append(parts, types.CompletedPart{ETag: partETag, PartNumber: aws.Int32(partNum)})
	}

	done, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(objectPath),
		UploadId:        uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		return abort(err)
	}
	return unquote(done.ETag), nil
}

// Get streams the object body.
func (s *S3Storage) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	var out *s3.GetObjectOutput
	err := s.retry(ctx, func() error {
		var err error
		out, err = s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectPath),
		})
		return notFound(err)
	})
	if errors.Is(err, ErrObjectNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGetFailed, objectPath, err)
	}
	return out.Body, nil
}

// Stat issues a HEAD request.
func (s *S3Storage) Stat(ctx context.Context, objectPath string) (ObjectInfo, error) {
	var out *s3.HeadObjectOutput
	err := s.retry(ctx, func() error {
		var err error
		out, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectPath),
		})
		return notFound(err)
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Path:     objectPath,
		Size:     aws.ToInt64(out.ContentLength),
		ETag:     unquote(out.ETag),
		Modified: aws.ToTime(out.LastModified),
	}, nil
}

// Delete removes an object. S3 treats a missing key as success.
func (s *S3Storage) Delete(ctx context.Context, objectPath string) error {
	err := s.retry(ctx, func() error {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectPath),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, objectPath, err)
	}
	return nil
}

// List pages through ListObjectsV2. S3 returns keys in lexical order.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	pages := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: failed to list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, ObjectInfo{
				Path:     aws.ToString(obj.Key),
				Size:     aws.ToInt64(obj.Size),
				ETag:     unquote(obj.ETag),
				Modified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

// retry runs op up to MaxRetries+1 times with exponential backoff starting
// at 100ms.
func (s *S3Storage) retry(ctx context.Context, op func() error) error {
	backoff := 100 * time.Millisecond
	var err error
	for attempt := 0; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = op()
		if err == nil || errors.Is(err, ErrObjectNotFound) || attempt >= s.cfg.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func notFound(err error) error {
	var (
		noSuchKey *types.NoSuchKey
		missing   *types.NotFound
	)
	if errors.As(err, &noSuchKey) || errors.As(err, &missing) {
		return ErrObjectNotFound
	}
	return err
}

func unquote(etag *string) string {
	return strings.Trim(aws.ToString(etag), `"`)
}
