package backup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mmynk/serralheria/internal/config"
)

// S3Uploader writes backup objects to an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader builds an S3 client from the application config. Static
// credentials are used when both keys are set; otherwise the default AWS
// credential chain applies.
func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	if err := cfg.ValidateBackup(); err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.BackupBucket,
	}, nil
}

// Put uploads body as a JSON object.
func (u *S3Uploader) Put(ctx context.Context, key string, body []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}
