package initializers

import (
	filestorage "attachment-portal-backend/lib/file-storage"
	s3client "attachment-portal-backend/s3"
	"context"

	log "github.com/sirupsen/logrus"
)

func InitS3() {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}
	s3client.Client = minioClient
	filestorage.NewHandler(minioClient)

	err = filestorage.Instance.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("S3 bucket check failed")
		return
	}
	log.Info("S3 client initialized")
}
