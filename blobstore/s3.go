package blobstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client abstracts the S3 API operations used by [S3Store].
// The [s3.Client] type satisfies this interface.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store implements Store backed by Amazon S3 or any S3-compatible
// object store. The caller configures the client (credentials, region,
// endpoint); publicBaseURL is the prefix public URLs are built from, e.g.
// a CDN or the bucket website endpoint.
type S3Store struct {
	client        S3Client
	bucket        string
	publicBaseURL string
}

// NewS3 creates an S3-backed Store.
func NewS3(client S3Client, bucket, publicBaseURL string) *S3Store {
	return &S3Store{client: client, bucket: bucket, publicBaseURL: publicBaseURL}
}

// Put uploads the file via PutObject and returns its public URL.
func (s *S3Store) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return fmt.Sprintf("%s/%s", s.publicBaseURL, name), nil
}

// Delete removes the object. S3 DeleteObject is already idempotent.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	return err
}

var _ Store = (*S3Store)(nil)
