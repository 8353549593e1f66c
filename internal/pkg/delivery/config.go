package delivery

import (
	"errors"
	"fmt"
	"time"

	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/env"
)

// Config holds archive delivery configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	Enabled         bool
}

// LoadConfig loads delivery configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-west-001"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("DELIVERY_ENABLED", "false") == "true",
	}

	// Validate required fields if delivery is enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when delivery is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when delivery is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when delivery is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if archive delivery is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetObjectKey generates a standardized object key for an export manifest
func (c *Config) GetObjectKey(batchID string, createdAt time.Time) string {
	// Format: exports/YYYY/MM/<batch-id>.json
	return fmt.Sprintf("exports/%04d/%02d/%s.json", createdAt.Year(), int(createdAt.Month()), batchID)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}

// GetBucketName returns the bucket name as configured
func (c *Config) GetBucketName() string {
	return c.BucketName
}
