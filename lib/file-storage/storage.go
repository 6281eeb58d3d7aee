package filestorage

import (
	"attachment-portal-backend/config"
	dbmodels "attachment-portal-backend/models/db"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ErrObjectNotFound is returned by GetFile when the object is missing in the bucket.
var ErrObjectNotFound = errors.New("object not found")

type Provider interface {
	// UploadFile stores the body under a fresh object name and returns that name.
	UploadFile(ctx context.Context, info dbmodels.UploadFileInfo) (objectName string, err error)
	GetFile(ctx context.Context, objectName string) ([]byte, error)
	RemoveFile(ctx context.Context, objectName string) error
	MakeBucket(ctx context.Context) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: config.Conf.S3.BucketName,
	}
}

func (i impl) UploadFile(ctx context.Context, info dbmodels.UploadFileInfo) (string, error) {
	objectName := ObjectName(info.OwnerID, info.FileName)
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(info.Body), int64(len(info.Body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "upload file to S3")
	}
	return objectName, nil
}

func (i impl) GetFile(ctx context.Context, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, i.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return body, nil
}

func (i impl) RemoveFile(ctx context.Context, objectName string) error {
	return i.s3client.RemoveObject(ctx, i.bucketName, objectName, minio.RemoveObjectOptions{})
}

func (i impl) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
}

// ObjectName builds a unique object name that keeps the original extension.
// Names are flat so they can be addressed as a single path segment.
func ObjectName(ownerID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ownerID + "-" + uuid.New().String() + ext
}

// ValidateUpload checks the upload against the configured size and extension limits.
func ValidateUpload(fileName string, size int64) error {
	maxSize := int64(config.Conf.Documents.MaxSizeMb) * 1024 * 1024
	if maxSize > 0 && size > maxSize {
		return errors.Errorf("file %s exceeds the %d MB limit", fileName, config.Conf.Documents.MaxSizeMb)
	}
	allowed := config.Conf.Documents.AllowedExtensions
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, item := range allowed {
		if strings.ToLower(item) == ext {
			return nil
		}
	}
	return errors.Errorf("file %s has an unsupported extension, allowed: %s", fileName, strings.Join(allowed, ", "))
}
