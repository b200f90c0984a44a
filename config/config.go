package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultJWTSecret is only accepted outside production.
const DefaultJWTSecret = "securityismypriority"

type Config struct {
	App       App
	Database  Database
	JWT       JWT
	Storage   Storage
	Redis     Redis
	CORS      CORS
	RateLimit RateLimit
}

type App struct {
	Env  string `env:"APP_ENV" env-default:"development"`
	Port string `env:"PORT" env-default:"2009"`
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means no proxy is trusted and the socket address is the client IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`
}

type Database struct {
	Driver string `env:"DB_DRIVER" env-default:"postgres"`
	DSN    string `env:"DATABASE_URL" env-default:"host=localhost user=postgres password=postgres dbname=aroena port=5432 sslmode=disable"`
}

type JWT struct {
	Secret string        `env:"JWT_SECRET" env-default:"securityismypriority"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"168h"`
}

type Storage struct {
	Driver    string `env:"STORAGE_DRIVER" env-default:"local"`
	UploadDir string `env:"UPLOAD_DIR" env-default:"uploads"`
	PublicURL string `env:"PUBLIC_URL" env-default:""`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Key       string `env:"S3_KEY"`
	S3Secret    string `env:"S3_SECRET"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" env-default:"aroena"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Prefix   string `env:"REDIS_PREFIX" env-default:"aroena"`
}

type CORS struct {
	Origins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type RateLimit struct {
	LoginPerMinute int `env:"LOGIN_RATE_PER_MINUTE" env-default:"10"`
}

func (c *Config) IsProduction() bool {
	switch c.App.Env {
	case "production", "prod", "release":
		return true
	}
	return false
}

// Load reads the process environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case "local", "s3", "cloudinary":
	default:
		return fmt.Errorf("config: unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.JWT.TTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return errors.New("config: JWT_SECRET must be set to a non-default value in production")
	}
	return nil
}
