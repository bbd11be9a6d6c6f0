package exporter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/slipframe/core/internal/config"
)

// Uploader pushes export artifacts to S3-compatible object storage so a
// download link can outlive the request that produced it.
type Uploader struct {
	client       *s3.Client
	bucket       string
	region       string
	endpoint     string
	customDomain string
	pathStyle    bool
}

func NewUploader(opts config.S3Options) (*Uploader, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/region/access_key_id/secret_access_key are required")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	// Non-AWS endpoints generally only speak path-style addressing.
	pathStyle := opts.PathStyleAccess
	if endpoint != "" && !pathStyle {
		pathStyle = true
	}

	s3Opts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		UsePathStyle: pathStyle,
	}
	if endpoint != "" {
		s3Opts.BaseEndpoint = aws.String(endpoint)
	}

	return &Uploader{
		client:       s3.New(s3Opts),
		bucket:       bucket,
		region:       region,
		endpoint:     endpoint,
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
	}, nil
}

// Upload stores the payload under key and returns the public URL.
func (u *Uploader) Upload(ctx context.Context, key string, payload []byte, contentType string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("invalid s3 object key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return u.publicURL(key), nil
}

func (u *Uploader) publicURL(key string) string {
	if u.customDomain != "" {
		return u.customDomain + "/" + key
	}
	if u.endpoint != "" {
		if u.pathStyle {
			return u.endpoint + "/" + u.bucket + "/" + key
		}
		return u.endpoint + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}
