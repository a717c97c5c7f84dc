package manifest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Source supplies raw manifest bytes.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads a manifest from the local file system.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string { return s.Path }

// Bytes is an in-memory manifest.
type Bytes []byte

// Load implements Source.
func (b Bytes) Load(context.Context) ([]byte, error) { return b, nil }

func (b Bytes) String() string { return "<inline>" }

// ObjectGetter is the subset of *s3.Client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a manifest object from an S3 bucket.
//
// Example usage:
//
//	client, err := manifest.NewS3Client(ctx, manifest.S3Options{Region: "eu-west-1"})
//	src := &manifest.S3Source{Client: client, Bucket: "my-app", Key: "routes.toml"}
//	m, err := manifest.Load(ctx, src)
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string

	// MaxSize limits the object size in bytes (0 = 1 MiB).
	MaxSize int64
}

const defaultMaxManifestSize = 1 << 20

// Load implements Source.
func (s *S3Source) Load(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get object failed: %w", err)
	}
	defer out.Body.Close()

	limit := s.MaxSize
	if limit <= 0 {
		limit = defaultMaxManifestSize
	}
	data, err := io.ReadAll(io.LimitReader(out.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("s3 read failed: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("manifest object exceeds %d bytes", limit)
	}
	return data, nil
}

func (s *S3Source) String() string {
	return "s3://" + s.Bucket + "/" + s.Key
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region       string
	Endpoint     string
	UsePathStyle bool

	// Anonymous skips credential resolution, for public buckets.
	Anonymous bool

	// Credentials overrides the default credential chain.
	Credentials aws.CredentialsProvider
}

// NewS3Client builds an S3 client from the default AWS configuration:
// environment, shared config and credentials files, SSO, and instance
// roles. Endpoint and UsePathStyle are applied as client overrides.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	switch {
	case opts.Anonymous:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	case opts.Credentials != nil:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(opts.Credentials))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrSource, err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.UsePathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}
