package dal

import (
	"context"
	"fmt"
	"net/url"

	"medstaff-backend/models"
	"medstaff-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStoreClient wraps S3 for asset promotion and deletion.
type ObjectStoreClient struct {
	client *s3.Client
	config *models.Config
	logger logger.Logger
}

// NewObjectStoreClient creates a new S3 client
func NewObjectStoreClient(cfg *models.Config, log logger.Logger) (*ObjectStoreClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		))
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Info("✅ S3 client initialized successfully")
	return &ObjectStoreClient{
		client: client,
		config: cfg,
		logger: log,
	}, nil
}

// CopyObject copies an object between buckets. The copy source key is
// URL-escaped so that keys holding spaces or unicode survive the call.
func (os *ObjectStoreClient) CopyObject(ctx context.Context, fromBucket, fromKey, toBucket, toKey string) error {
	source := fromBucket + "/" + url.PathEscape(fromKey)

	_, err := os.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(toBucket),
		Key:        aws.String(toKey),
		CopySource: aws.String(source),
	})
	if err != nil {
		os.logger.Errorf("Failed to copy object %s -> %s/%s: %v", source, toBucket, toKey, err)
	}
	return err
}

// DeleteObject removes an object from a bucket
func (os *ObjectStoreClient) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := os.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		os.logger.Errorf("Failed to delete object %s/%s: %v", bucket, key, err)
	}
	return err
}
