package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakePutter) PutObject(_ context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	b, _ := io.ReadAll(r)
	if int64(len(b)) != size {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}
	f.objects[bucket+"/"+name] = string(b)
	f.types[name] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: name, Size: size}, nil
}

func TestArchive(t *testing.T) {
	fake := &fakePutter{objects: map[string]string{}, types: map[string]string{}}
	a := newArchiver(fake, "notes", "meetings")

	err := a.Archive(context.Background(), "m1", "héllo transcript", "a summary")
	require.NoError(t, err)

	assert.Equal(t, "héllo transcript", fake.objects["notes/meetings/m1/transcript.txt"])
	assert.Equal(t, "a summary", fake.objects["notes/meetings/m1/summary.txt"])
	assert.Equal(t, "text/plain; charset=utf-8", fake.types["meetings/m1/summary.txt"])
}

func TestArchive_Error(t *testing.T) {
	fake := &fakePutter{err: errors.New("access denied")}
	a := newArchiver(fake, "notes", "")

	err := a.Archive(context.Background(), "m1", "t", "s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "m1/transcript.txt")
	assert.Contains(t, err.Error(), "access denied")
}

func TestObjectName(t *testing.T) {
	a := newArchiver(nil, "notes", "meetings/")
	assert.Equal(t, "meetings/abc/summary.txt", a.ObjectName("abc", SummaryObject))
}
