package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

const (
	TranscriptObject = "transcript.txt"
	SummaryObject    = "summary.txt"
)

// objectPutter is the subset of *minio.Client used by the archiver
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOArchiver copies pipeline artifacts to an S3 compatible bucket
type MinIOArchiver struct {
	client objectPutter
	bucket string
	prefix string
}

// NewMinIOArchiver creates a MinIO client and makes sure the bucket exists
func NewMinIOArchiver(ctx context.Context, cfg *config.StorageConfig) (*MinIOArchiver, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return newArchiver(minioClient, cfg.BucketName, cfg.Prefix), nil
}

func newArchiver(client objectPutter, bucket, prefix string) *MinIOArchiver {
	return &MinIOArchiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// ObjectName returns the key of an artifact, e.g. meetings/<id>/summary.txt
func (m *MinIOArchiver) ObjectName(meetingID, name string) string {
	return path.Join(m.prefix, meetingID, name)
}

// Archive uploads the transcript and summary of a processed meeting
func (m *MinIOArchiver) Archive(ctx context.Context, meetingID, transcript, summary string) error {
	if err := m.uploadText(ctx, m.ObjectName(meetingID, TranscriptObject), transcript); err != nil {
		return err
	}
	return m.uploadText(ctx, m.ObjectName(meetingID, SummaryObject), summary)
}

func (m *MinIOArchiver) uploadText(ctx context.Context, objectName, content string) error {
	reader := bytes.NewReader([]byte(content))
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}
