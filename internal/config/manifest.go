package config

import (
	"errors"
	"os"
)

// ManifestConfig locates the route manifest and its templates.
type ManifestConfig struct {
	// Path is a local manifest file. Ignored when S3.Bucket is set.
	Path string `toml:"path"`

	// Templates is the directory template files are read from.
	Templates string `toml:"templates"`

	S3 S3Config `toml:"s3"`
}

// S3Config locates a manifest stored in S3. Credentials come from the
// default AWS chain unless Anonymous is set.
type S3Config struct {
	Bucket   string `toml:"bucket"`
	Key      string `toml:"key"`
	Region   string `toml:"region"`
	Endpoint string `toml:"endpoint"`

	// UsePathStyle addresses the bucket in the path, for S3-compatible stores.
	UsePathStyle bool `toml:"use_path_style"`

	// Anonymous reads public buckets without credentials.
	Anonymous bool `toml:"anonymous"`
}

// Enabled reports whether the manifest is read from S3.
func (c *S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *ManifestConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *ManifestConfig) Merge(overlay *ManifestConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.Templates != "" {
		c.Templates = overlay.Templates
	}
	if overlay.S3.Bucket != "" {
		c.S3.Bucket = overlay.S3.Bucket
	}
	if overlay.S3.Key != "" {
		c.S3.Key = overlay.S3.Key
	}
	if overlay.S3.Region != "" {
		c.S3.Region = overlay.S3.Region
	}
	if overlay.S3.Endpoint != "" {
		c.S3.Endpoint = overlay.S3.Endpoint
	}
	if overlay.S3.UsePathStyle {
		c.S3.UsePathStyle = true
	}
	if overlay.S3.Anonymous {
		c.S3.Anonymous = true
	}
}

func (c *ManifestConfig) loadDefaults() {
	if c.Path == "" {
		c.Path = "routes.toml"
	}
	if c.Templates == "" {
		c.Templates = "templates"
	}
	if c.S3.Key == "" {
		c.S3.Key = "routes.toml"
	}
}

func (c *ManifestConfig) loadEnv() {
	if v := os.Getenv(EnvPrefix + "MANIFEST"); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvPrefix + "TEMPLATES"); v != "" {
		c.Templates = v
	}
	if v := os.Getenv(EnvPrefix + "S3_BUCKET"); v != "" {
		c.S3.Bucket = v
	}
	if v := os.Getenv(EnvPrefix + "S3_KEY"); v != "" {
		c.S3.Key = v
	}
	if v := os.Getenv(EnvPrefix + "S3_REGION"); v != "" {
		c.S3.Region = v
	}
	if v := os.Getenv(EnvPrefix + "S3_ENDPOINT"); v != "" {
		c.S3.Endpoint = v
	}
	if v, ok := envBool(EnvPrefix + "S3_ANONYMOUS"); ok {
		c.S3.Anonymous = v
	}
}

func (c *ManifestConfig) validate() error {
	if c.S3.Enabled() && c.S3.Region == "" {
		return errors.New("s3.region is required when s3.bucket is set")
	}
	return nil
}
