package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/viper"
)

type S3Store struct {
	C      *s3.Client
	Bucket *string
	Region string
}

func NewS3() (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))
	region := viper.GetString("aws.region")

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = region
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Store{
		C:      client,
		Bucket: bucket,
		Region: region,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	_, err := s.C.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       s.Bucket,
		Key:          aws.String(key),
		Body:         r,
		CacheControl: aws.String("public, max-age=31536000, immutable"),
		ContentType:  aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload picture, %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", *s.Bucket, s.Region, key), nil
}
