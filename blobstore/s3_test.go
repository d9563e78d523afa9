package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type mockS3Client struct {
	putInput    *s3.PutObjectInput
	deleteInput *s3.DeleteObjectInput
	putErr      error
	deleteErr   error
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putInput = params
	if m.putErr != nil {
		return nil, m.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	m.deleteInput = params
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Put(t *testing.T) {
	mock := &mockS3Client{}
	s := NewS3(mock, "media-bucket", "https://cdn.example.com")

	url, err := s.Put(context.Background(), "123-pic.png", "image/png", []byte("data"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if url != "https://cdn.example.com/123-pic.png" {
		t.Errorf("url = %q", url)
	}
	if mock.putInput == nil {
		t.Fatal("PutObject was not called")
	}
	if *mock.putInput.Bucket != "media-bucket" || *mock.putInput.Key != "123-pic.png" {
		t.Errorf("PutObject bucket/key = %q/%q", *mock.putInput.Bucket, *mock.putInput.Key)
	}
	if *mock.putInput.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", *mock.putInput.ContentType)
	}
	body, err := io.ReadAll(mock.putInput.Body)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "data" {
		t.Errorf("Body = %q, want %q", body, "data")
	}
}

func TestS3PutError(t *testing.T) {
	mock := &mockS3Client{putErr: errors.New("access denied")}
	s := NewS3(mock, "media-bucket", "https://cdn.example.com")

	if _, err := s.Put(context.Background(), "x.png", "image/png", nil); err == nil {
		t.Error("Put should surface the client error")
	}
}

func TestS3Delete(t *testing.T) {
	mock := &mockS3Client{}
	s := NewS3(mock, "media-bucket", "https://cdn.example.com")

	if err := s.Delete(context.Background(), "123-pic.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mock.deleteInput == nil {
		t.Fatal("DeleteObject was not called")
	}
	if *mock.deleteInput.Key != "123-pic.png" {
		t.Errorf("DeleteObject key = %q", *mock.deleteInput.Key)
	}
}
