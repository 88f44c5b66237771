package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		TTL string `yaml:"ttl" env:"SESSION_TTL"`
	} `yaml:"session"`

	Storage struct {
		Path            string `yaml:"path" env:"STORAGE_PATH"`
		BaseURL         string `yaml:"base_url" env:"STORAGE_BASE_URL"`
		MaxUploadSizeMB int    `yaml:"max_upload_size_mb" env:"STORAGE_MAX_UPLOAD_SIZE_MB"`
	} `yaml:"storage"`

	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
	} `yaml:"redis"`

	Courses struct {
		MaxChapters           int `yaml:"max_chapters" env:"COURSE_MAX_CHAPTERS"`
		MaxLessonsPerChapter  int `yaml:"max_lessons_per_chapter" env:"COURSE_MAX_LESSONS"`
		MaxVideosPerLesson    int `yaml:"max_videos_per_lesson" env:"COURSE_MAX_VIDEOS"`
		MaxDocumentsPerLesson int `yaml:"max_documents_per_lesson" env:"COURSE_MAX_DOCUMENTS"`
	} `yaml:"courses"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "eduflow"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.TTL = "24h"

	config.Storage.Path = "./uploads"
	config.Storage.BaseURL = "/uploads"
	config.Storage.MaxUploadSizeMB = 500

	config.Redis.Enabled = false
	config.Redis.Addr = "localhost:6379"

	config.Courses.MaxChapters = 10
	config.Courses.MaxLessonsPerChapter = 10
	config.Courses.MaxVideosPerLesson = 5
	config.Courses.MaxDocumentsPerLesson = 5

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection lifetime format: %w", err)
	}

	if config.Courses.MaxChapters < 1 || config.Courses.MaxLessonsPerChapter < 1 {
		return fmt.Errorf("course tree bounds must be positive")
	}

	return nil
}

// SessionTTL returns the parsed session lifetime
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Session.TTL)
	return d
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Storage.MaxUploadSizeMB) * 1024 * 1024
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
