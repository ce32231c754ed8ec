package storage

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutObject struct {
	calls int
	err   error
	input *s3.PutObjectInput
}

func (f *fakePutObject) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(fake *fakePutObject) *S3Store {
	return &S3Store{
		client:        fake,
		bucket:        "blog-images",
		publicBaseURL: "https://cdn.example.com/blog-images",
		maxBytes:      10 << 20,
		log:           slog.Default(),
	}
}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakePutObject{}
	store := newTestStore(fake)

	url, err := store.Upload(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/blog-images/blog/"))
	assert.Equal(t, "image/png", *fake.input.ContentType)
}

func TestS3Store_RejectsNonImageBeforeAnyCall(t *testing.T) {
	fake := &fakePutObject{}
	store := newTestStore(fake)

	_, err := store.Upload(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Zero(t, fake.calls, "no network call may happen for a non-image payload")
}

func TestS3Store_RejectsOversizedBeforeAnyCall(t *testing.T) {
	fake := &fakePutObject{}
	store := newTestStore(fake)
	store.maxBytes = 8

	_, err := store.Upload(context.Background(), []byte("123456789"), "image/jpeg")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Zero(t, fake.calls)
}

func TestS3Store_ServiceFailureIsGeneric(t *testing.T) {
	fake := &fakePutObject{err: errors.New("connection reset")}
	store := newTestStore(fake)

	_, err := store.Upload(context.Background(), []byte("png-bytes"), "image/png")
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, 1, fake.calls, "no retry on failure")
}
