package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "ats-backend/s3"
)

func InitS3(ctx context.Context) {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}
	// connection check
	err = client.MakeBucket(ctx)
	if err != nil {
		log.WithError(err).Error("S3 bucket check failed, documents are unavailable")
	}
	s3client.Client = client
	log.Info("S3 client initialized")
}
