package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Blog Module"`
	Description string `yaml:"description" default:"A minimal blog with image attachments"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12700"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" default:"./blogmod.db"`
	// Compression selects the codec for the content column: zstd or gzip.
	Compression string `yaml:"compression" default:"zstd"`
}

type StorageConfig struct {
	// Backend selects where image blobs go: s3 or fs.
	Backend string   `yaml:"backend" default:"fs"`
	S3      S3Config `yaml:"s3"`
	FS      FSConfig `yaml:"fs"`
}

type S3Config struct {
	Endpoint string `yaml:"endpoint" default:""`
	Region   string `yaml:"region" default:"auto"`
	Bucket   string `yaml:"bucket" default:""`
	// PublicBaseURL is prepended to object keys to form the stored image URL.
	PublicBaseURL string `yaml:"public_base_url" default:""`
	KeyPrefix     string `yaml:"key_prefix" default:"blog_posts"`
}

type FSConfig struct {
	Dir string `yaml:"dir" default:"./uploads"`
	// BaseURL is the externally visible prefix for served uploads.
	// Empty means same-origin relative URLs.
	BaseURL string `yaml:"base_url" default:""`
}

type UploadsConfig struct {
	MaxBytes int64 `yaml:"max_bytes" default:"10485760"`
	// Attempts and BackoffMs bound the retry loop for transient storage failures.
	Attempts  int `yaml:"attempts" default:"3"`
	BackoffMs int `yaml:"backoff_ms" default:"200"`
}

type AuthConfig struct {
	// Type selects the auth provider: clerk, token or none.
	Type string `yaml:"type" default:"none"`
	// RequireForWrites gates POST/PUT/DELETE on a resolved user when a
	// provider is configured. Reads stay public either way.
	RequireForWrites bool `yaml:"require_for_writes" default:"true"`
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int, reflect.Int64:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
