// Package config defines the application configuration and its loader.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Mongo  MongoConfig  `mapstructure:"mongo"  validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
	Media  MediaConfig  `mapstructure:"media"  validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// MongoConfig contains all database related settings.
type MongoConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// The JWT secret is loaded once at startup and is immutable afterwards.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// MediaConfig contains settings for the S3-compatible media host.
type MediaConfig struct {
	Endpoint     string `mapstructure:"endpoint"       validate:"required"`
	AccessKey    string `mapstructure:"access_key"     validate:"required"`
	SecretKey    string `mapstructure:"secret_key"     validate:"required"`
	Bucket       string `mapstructure:"bucket"         validate:"required"`
	PublicURL    string `mapstructure:"public_url"     validate:"required,url"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes" validate:"required,gt=0"`
}
