// Package blob moves annotation tables between local paths and S3 objects.
// Remote locations are staged through a local directory so every table
// reader and writer only ever deals with files.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNotS3 is returned when a location is not an s3:// URL.
var ErrNotS3 = errors.New("not an s3 location")

// Location addresses one S3 object.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string { return "s3://" + l.Bucket + "/" + l.Key }

// Base returns the last path element of the key.
func (l Location) Base() string { return path.Base(l.Key) }

// IsS3 reports whether s is an s3:// URL.
func IsS3(s string) bool { return strings.HasPrefix(s, "s3://") }

// Parse splits an s3://bucket/key URL.
func Parse(s string) (Location, error) {
	if !IsS3(s) {
		return Location{}, fmt.Errorf("%w: %q", ErrNotS3, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return Location{}, fmt.Errorf("invalid s3 url %q: %w", s, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("s3 url %q must name a bucket and an object key", s)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Join returns the location of name inside the prefix s3://bucket/prefix/.
func Join(prefix, name string) (Location, error) {
	if !IsS3(prefix) {
		return Location{}, fmt.Errorf("%w: %q", ErrNotS3, prefix)
	}
	return Parse(strings.TrimSuffix(prefix, "/") + "/" + name)
}

// Config holds S3 client settings. Credentials come from the default AWS
// chain.
type Config struct {
	Region string `koanf:"region"`
	// Endpoint enables a custom S3-compatible endpoint such as MinIO.
	Endpoint  string `koanf:"endpoint"`
	PathStyle bool   `koanf:"path_style"`
}

// Client stages objects to and from local files.
type Client struct {
	s3 *s3.Client
}

// New builds a client from cfg.
func New(ctx context.Context, cfg Config) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client), nil
}

// NewWithClient wraps an existing S3 client.
func NewWithClient(c *s3.Client) *Client {
	return &Client{s3: c}
}

// Download copies the object at loc into dir, keeping its base name so the
// table format can still be detected from the extension. It returns the
// local path.
func (c *Client) Download(ctx context.Context, loc Location, dir string) (_ string, err error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{Bucket: &loc.Bucket, Key: &loc.Key})
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", loc, err)
	}
	defer out.Body.Close()

	dst := filepath.Join(dir, loc.Base())
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", loc, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(f, out.Body); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", loc, err)
	}
	return dst, nil
}

// Upload copies the local file at src to loc, replacing any existing
// object.
func (c *Client) Upload(ctx context.Context, src string, loc Location) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	input := &s3.PutObjectInput{Bucket: &loc.Bucket, Key: &loc.Key, Body: f}
	if ct := contentType(loc.Key); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put %s: %w", loc, err)
	}
	return nil
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".csv":
		return "text/csv"
	case ".tsv", ".tab", ".txt":
		return "text/tab-separated-values"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".zip":
		return "application/zip"
	case ".db", ".sqlite", ".sqlite3":
		return "application/vnd.sqlite3"
	}
	return ""
}
