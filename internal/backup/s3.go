package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config locates a bucket on AWS or an S3-compatible server.
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Target stores snapshots as objects under Prefix.
type S3Target struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Target builds a client from the default AWS chain, overridden by
// static keys and a custom endpoint when given.
//
// Setting Endpoint switches the client to path-style addressing, which
// MinIO and most S3-compatible servers expect.
//
// Example:
//
//	t, err := backup.NewS3Target(ctx, backup.S3Config{
//	    Bucket:   "journal",
//	    Prefix:   "antara",
//	    Region:   "us-east-1",
//	    Endpoint: "http://127.0.0.1:9000",
//	})
func NewS3Target(ctx context.Context, c S3Config) (*S3Target, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID, c.SecretAccessKey, "",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Target{client: client, bucket: c.Bucket, prefix: c.Prefix}, nil
}

func (t *S3Target) key(name string) string {
	return path.Join(t.prefix, path.Base(name))
}

func (t *S3Target) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := t.key(name)
	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", t.bucket, key, err)
	}
	return "s3://" + t.bucket + "/" + key, nil
}

func (t *S3Target) Get(ctx context.Context, name string) ([]byte, error) {
	key := t.key(name)
	out, err := t.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", t.bucket, key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", t.bucket, key, err)
	}
	return b, nil
}
