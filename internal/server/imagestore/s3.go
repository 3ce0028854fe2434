package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "bookworm/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// S3Store keeps cover images in a single bucket of an S3-compatible backend
// (MinIO in development). Objects are publicly readable through publicBase.
type S3Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

// NewS3Store builds the S3 client once at startup from static credentials and
// a custom endpoint.
func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3AccessKey,
			c.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:     client,
		bucket:     c.S3Bucket,
		publicBase: strings.TrimRight(c.S3PublicBaseURL, "/"),
	}, nil
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("covers/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload stores the image under a fresh key and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := randomStorageKey()

	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("error uploading image: %w", err)
	}

	return s.urlPrefix() + key, nil
}

// Delete removes the object a previously returned URL points at.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return fmt.Errorf("url %q is not hosted by this store", url)
	}

	if _, err := deleteObject(s.client, ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("error deleting image: %w", err)
	}
	return nil
}

// Hosts reports whether url points into this store's bucket.
func (s *S3Store) Hosts(url string) bool {
	_, ok := s.keyFromURL(url)
	return ok
}

func (s *S3Store) urlPrefix() string {
	return s.publicBase + "/" + s.bucket + "/"
}

func (s *S3Store) keyFromURL(url string) (string, bool) {
	key := strings.TrimPrefix(url, s.urlPrefix())
	if key == url || key == "" {
		return "", false
	}
	return key, true
}
