// Package s3 stores event images in an S3-compatible object store.
package s3

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"gatherly/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Client uploads and removes image objects and builds their public URLs.
type Client struct {
	api      *s3.S3
	bucket   string
	endpoint string
	region   string
	useSSL   bool
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	useSSL := cfg.S3UseSSL != "false"
	// A custom endpoint means MinIO or another S3-compatible store.
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if !useSSL {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	c := &Client{
		api:      s3.New(sess),
		bucket:   cfg.S3BucketName,
		endpoint: trimScheme(cfg.AWSEndpoint),
		region:   cfg.AWSRegion,
		useSSL:   useSSL,
	}

	if _, err := c.api.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
		if _, err := c.api.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(c.bucket)}); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket %s: %w", c.bucket, err)
		}
	}
	return c, nil
}

// UploadFile stores the file under key and returns its public URL.
func (c *Client) UploadFile(key string, file multipart.File, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := c.api.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return c.objectURL(key), nil
}

// DeleteFile removes the object stored under key.
func (c *Client) DeleteFile(key string) error {
	_, err := c.api.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// KeyFromURL recovers the object key from a URL produced by UploadFile.
// URLs that do not point into this client's bucket yield "".
func (c *Client) KeyFromURL(url string) string {
	url = trimScheme(url)
	if c.endpoint != "" {
		prefix := c.endpoint + "/" + c.bucket + "/"
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
		return ""
	}
	prefix := fmt.Sprintf("%s.s3.%s.amazonaws.com/", c.bucket, c.regionOrDefault())
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	return ""
}

func (c *Client) objectURL(key string) string {
	if c.endpoint != "" {
		scheme := "http"
		if c.useSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.regionOrDefault(), key)
}

func (c *Client) regionOrDefault() string {
	if c.region == "" {
		return "us-east-1"
	}
	return c.region
}

func trimScheme(url string) string {
	url = strings.TrimPrefix(url, "https://")
	return strings.TrimPrefix(url, "http://")
}
