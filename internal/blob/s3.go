package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
)

type S3BlobStore struct { // implements Store
	client *s3.Client

	bucket        string
	publicBaseURL string
	keyPrefix     string
}

func NewS3BlobStore(accessKeyID, accessKeySecret, baseEndpoint, region, bucket, publicBaseURL, keyPrefix string) *S3BlobStore {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		blobLogger.Fatal().Err(err).Msg("Error initializing S3 client")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
		}
	})

	return &S3BlobStore{
		client: client,

		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		keyPrefix:     strings.Trim(keyPrefix, "/"),
	}
}

// Store uploads under a fresh uuid-named key, so two successful calls can
// never overwrite each other's content.
func (s *S3BlobStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}

	key := uuid.New().String() + ext
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", classifyS3Error(err)
	}

	blobLogger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int("size", len(data)).
		Msg("Stored blob")

	return s.publicBaseURL + "/" + key, nil
}

// classifyS3Error folds provider errors into the store's taxonomy. Anything
// not recognizably fatal counts as unavailable so the caller may retry.
func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "QuotaExceeded", "EntityTooLarge", "MaxMessageLengthExceeded":
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.ErrorCode())
		}
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, apiErr.ErrorCode())
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
