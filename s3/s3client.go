package s3client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"ats-backend/config"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	PresignedGetURL(ctx context.Context, key, fileName string, ttl time.Duration) (string, error)
	RemoveObject(ctx context.Context, key string) error
}

var Client Provider

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient() (Provider, error) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &s3client{
		minioClient: minioClient,
		bucketName:  config.Conf.S3.BucketName,
	}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.minioClient.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "put object %v failed", key)
	}
	return nil
}

func (s s3client) GetObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %v failed", key)
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrapf(err, "read object %v failed", key)
	}
	return body, nil
}

// PresignedGetURL returns a link that downloads the object under fileName until ttl passes.
func (s s3client) PresignedGetURL(ctx context.Context, key, fileName string, ttl time.Duration) (string, error) {
	reqParams := make(url.Values)
	if fileName != "" {
		reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	link, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, key, ttl, reqParams)
	if err != nil {
		return "", errors.Wrapf(err, "presign object %v failed", key)
	}
	return link.String(), nil
}

func (s s3client) RemoveObject(ctx context.Context, key string) error {
	err := s.minioClient.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "remove object %v failed", key)
	}
	return nil
}
