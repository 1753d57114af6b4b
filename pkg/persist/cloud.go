package persist

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"google.golang.org/api/option"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

const uploadPartSize = 8 * 1024 * 1024

// uploader is the part of manager.Uploader used by S3.
type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3 uploads artifacts to an S3 bucket under Prefix.
type S3 struct {
	uploader uploader
	bucket   string
	prefix   string
}

// NewS3 loads the default AWS configuration chain and returns an S3
// backend. An empty region leaves the region to the chain.
func NewS3(ctx context.Context, bucket, prefix, region string) (*S3, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to load AWS config")
	}

	client := s3.NewFromConfig(cfg)
	up := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = uploadPartSize
	})
	return newS3(up, bucket, prefix), nil
}

func newS3(up uploader, bucket, prefix string) *S3 {
	return &S3{uploader: up, bucket: bucket, prefix: prefix}
}

// Persist implements frame.Persister.
func (s *S3) Persist(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	key := objectKey(s.prefix, name)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(ContentType(name)),
		Metadata: map[string]string{
			"created": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to upload to S3").
			WithDetail("bucket", s.bucket).
			WithDetail("key", key)
	}
	return nil
}

// objectOpener opens a writer for an object in the bucket.
type objectOpener func(ctx context.Context, object, contentType string) io.WriteCloser

// GCS writes artifacts to a Google Cloud Storage bucket under Prefix.
type GCS struct {
	open   objectOpener
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a storage client. An empty credentialsFile uses
// application default credentials.
func NewGCS(ctx context.Context, bucket, prefix, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create GCS client")
	}

	handle := client.Bucket(bucket)
	g := newGCS(func(ctx context.Context, object, contentType string) io.WriteCloser {
		w := handle.Object(object).NewWriter(ctx)
		w.ContentType = contentType
		w.Metadata = map[string]string{
			"created": time.Now().UTC().Format(time.RFC3339),
		}
		return w
	}, bucket, prefix)
	g.client = client
	return g, nil
}

func newGCS(open objectOpener, bucket, prefix string) *GCS {
	return &GCS{open: open, bucket: bucket, prefix: prefix}
}

// Persist implements frame.Persister.
func (g *GCS) Persist(ctx context.Context, name string, content []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	object := objectKey(g.prefix, name)
	w := g.open(ctx, object, ContentType(name))
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to write to GCS").
			WithDetail("bucket", g.bucket).
			WithDetail("object", object)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConnection, "failed to close GCS writer").
			WithDetail("bucket", g.bucket).
			WithDetail("object", object)
	}
	return nil
}

// Close releases the storage client.
func (g *GCS) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(strings.TrimSuffix(prefix, "/"), name)
}

var contentTypes = map[string]string{
	".csv":   "text/csv",
	".json":  "application/json",
	".arrow": "application/vnd.apache.arrow.file",
	".gz":    "application/gzip",
	".zst":   "application/zstd",
	".lz4":   "application/x-lz4",
	".sz":    "application/x-snappy-framed",
	".s2":    "application/x-s2",
}

// ContentType guesses the media type of an artifact from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
