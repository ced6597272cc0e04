package conf

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageS3     = "s3"
	StorageMemory = "memory"
)

type Config struct {
	Address     string   `env:"ADDRESS" envDefault:":8080"`
	Debug       bool     `env:"DEBUG" envDefault:"false"`
	CorsOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	JwtKey           string `env:"JWT_KEY"`
	JwtKeySecretName string `env:"JWT_KEY_SECRET_NAME"`

	ManifestPath   string `env:"ACTIVITY_MANIFEST" envDefault:"activity.toml"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	FilesBaseURL   string `env:"FILES_BASE_URL" envDefault:"http://localhost:8080/files"`
	ProjectSeed    string `env:"PROJECT_SEED"`

	AwsRegion string `env:"AWS_REGION" envDefault:"eu-central-1"`
	S3Bucket  string `env:"S3_BUCKET"`

	WorkgroupsTable  string `env:"DDB_WORKGROUPS_TABLE" envDefault:"gp_workgroups"`
	SubmissionsTable string `env:"DDB_SUBMISSIONS_TABLE" envDefault:"gp_submissions"`
	ReviewsTable     string `env:"DDB_REVIEWS_TABLE" envDefault:"gp_reviews"`
	CompletionsTable string `env:"DDB_COMPLETIONS_TABLE" envDefault:"gp_stage_completions"`

	EventsQueueURL string `env:"EVENTS_QUEUE_URL"`

	SendgridKey   string `env:"SENDGRID_API_KEY"`
	SendgridFrom  string `env:"SENDGRID_FROM" envDefault:"noreply@example.com"`
	NotifyAppName string `env:"NOTIFY_APP_NAME" envDefault:"Group Projects"`
}

// Load reads .env files when present and parses the environment.
func Load(files ...string) (*Config, error) {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.JwtKey == "" && c.JwtKeySecretName == "" {
		return errors.New("JWT_KEY or JWT_KEY_SECRET_NAME must be set")
	}
	return nil
}

// ResolveJwtKey returns JWT_KEY or the secret named by JWT_KEY_SECRET_NAME.
func (c *Config) ResolveJwtKey(ctx context.Context) ([]byte, error) {
	if c.JwtKey != "" {
		return []byte(c.JwtKey), nil
	}
	secret, err := getSecretFromAWS(ctx, c.AwsRegion, c.JwtKeySecretName)
	if err != nil {
		return nil, fmt.Errorf("failed to get jwt key from AWS: %w", err)
	}
	return []byte(secret), nil
}

func (c *Config) UseS3() bool {
	return c.StorageBackend == StorageS3
}
