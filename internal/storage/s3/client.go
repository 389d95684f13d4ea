// Package s3 provides the S3-compatible BlobStore used in production.
// Assets are immutable once written: uploads refuse to overwrite an
// occupied key and deletes are idempotent.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/mfujioka/campus-cms/internal/domain"
)

// Config carries connection settings for the store.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// Endpoint overrides the AWS endpoint for S3-compatible providers
	// (MinIO and friends). Empty means plain AWS.
	Endpoint string

	// PublicBaseURL is the prefix public asset URLs are derived from,
	// e.g. a CDN origin. URLs take the form {base}/{bucket}/{key}.
	PublicBaseURL string

	// CacheControl is sent with every upload.
	CacheControl string

	// OpTimeout bounds each storage call. Zero means DefaultOpTimeout.
	OpTimeout time.Duration
}

// DefaultOpTimeout bounds individual storage calls when the config does
// not say otherwise.
const DefaultOpTimeout = 30 * time.Second

// Client implements domain.BlobStore against S3-compatible object storage.
type Client struct {
	s3            *awss3.Client
	publicBaseURL string
	cacheControl  string
	opTimeout     time.Duration
}

// NewClient builds a Client from static credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	s3Client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	timeout := cfg.OpTimeout
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}
	cacheControl := cfg.CacheControl
	if cacheControl == "" {
		cacheControl = "public, max-age=3600"
	}

	return &Client{
		s3:            s3Client,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		cacheControl:  cacheControl,
		opTimeout:     timeout,
	}, nil
}

// Upload writes data under bucket/key. An occupied key fails with
// domain.ErrKeyExists; the conditional write keeps assets immutable.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	_, err := c.s3.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(c.cacheControl),
		IfNoneMatch:  aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return fmt.Errorf("%w: %s/%s", domain.ErrKeyExists, bucket, key)
		}
		return fmt.Errorf("put object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL derives the stable public URL for a key. Pure string work, no
// network I/O; the bucket always appears as a path segment.
func (c *Client) PublicURL(bucket, key string) string {
	return c.publicBaseURL + "/" + bucket + "/" + key
}

// Remove deletes an object. S3 DeleteObject succeeds for missing keys, so
// the idempotency contract comes for free.
func (c *Client) Remove(ctx context.Context, bucket, key string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	_, err := c.s3.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s/%s: %w", bucket, key, err)
	}
	return nil
}
