package s3bucket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Bucket struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Bucket(cfg aws.Config, bucket string) *S3Bucket {
	return &S3Bucket{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}
}

// ObjectURL is the public URL of key in this bucket.
func (bucket *S3Bucket) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket.bucket, bucket.region, key)
}

// SaveFile uploads content under key unless an object with that key
// already exists, and returns the object URL.
func (bucket *S3Bucket) SaveFile(ctx context.Context, key string, content []byte, mediaType string) (string, error) {
	exists, err := bucket.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		return bucket.ObjectURL(key), nil
	}
	return bucket.Upload(ctx, content, key, mediaType)
}

// Upload uploads the given content to the S3 bucket with the specified key and media type.
// It returns the URL of the uploaded object or an error if the upload fails.
func (bucket *S3Bucket) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	_, err := bucket.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket.bucket,
		Key:         &key,
		Body:        bytes.NewReader(content),
		ContentType: &mediaType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return bucket.ObjectURL(key), nil
}

func (bucket *S3Bucket) Exists(ctx context.Context, key string) (bool, error) {
	_, err := bucket.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket.bucket,
		Key:    &key,
	})
	if err != nil {
		var responseError *awshttp.ResponseError
		if errors.As(err, &responseError) && responseError.ResponseError.HTTPStatusCode() == http.StatusNotFound {
			slog.Debug("key does not exist in bucket", "key", key, "bucket", bucket.bucket)
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}

// ListFiles lists the keys in the bucket that start with prefix.
func (bucket *S3Bucket) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: &bucket.bucket,
	}

	if prefix != "" {
		input.Prefix = &prefix
	}

	paginator := s3.NewListObjectsV2Paginator(bucket.client, input)

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}

	return keys, nil
}
