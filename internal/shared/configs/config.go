package configs

// Config holds all configuration for the application.
type Config struct {
	Server         ServerConfig         `mapstructure:"server" validate:"required"`
	Log            LogConfig            `mapstructure:"log" validate:"required"`
	BlobStorage    BlobStorageConfig    `mapstructure:"blob_storage" validate:"required"`
	Sessionization SessionizationConfig `mapstructure:"sessionization" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// BlobStorageConfig holds blob storage configuration.
type BlobStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// SessionizationConfig holds the tunables of the session engine.
// GapThresholdMinutes is the minimum idle gap that starts a new session;
// an event exactly that many minutes after the previous one opens a new
// session (inclusive boundary).
type SessionizationConfig struct {
	GapThresholdMinutes int64 `mapstructure:"gap_threshold_minutes" validate:"required,min=1"`
	Workers             int   `mapstructure:"workers" validate:"required,min=1,max=256"`
	TopK                int   `mapstructure:"top_k" validate:"required,min=1"`
	Strict              bool  `mapstructure:"strict"`
}
