package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Site.Name != "Blog Module" {
			t.Errorf("Expected site name 'Blog Module', got %q", config.Site.Name)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("Expected host '0.0.0.0', got %q", config.Server.Host)
		}
		if config.Server.Port != "12700" {
			t.Errorf("Expected port '12700', got %q", config.Server.Port)
		}
		if config.Database.Compression != "zstd" {
			t.Errorf("Expected compression 'zstd', got %q", config.Database.Compression)
		}
		if config.Storage.Backend != "fs" {
			t.Errorf("Expected storage backend 'fs', got %q", config.Storage.Backend)
		}
		if config.Storage.S3.KeyPrefix != "blog_posts" {
			t.Errorf("Expected key prefix 'blog_posts', got %q", config.Storage.S3.KeyPrefix)
		}
		if config.Uploads.MaxBytes != 10485760 {
			t.Errorf("Expected max upload bytes 10485760, got %d", config.Uploads.MaxBytes)
		}
		if config.Uploads.Attempts != 3 {
			t.Errorf("Expected 3 upload attempts, got %d", config.Uploads.Attempts)
		}
		if config.Auth.Type != "none" {
			t.Errorf("Expected auth type 'none', got %q", config.Auth.Type)
		}
		if !config.Auth.RequireForWrites {
			t.Error("Expected writes to require auth by default")
		}
		if config.Logging.Level != "info" {
			t.Errorf("Expected log level 'info', got %q", config.Logging.Level)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		if err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("LoadConfig returned error for missing file: %v", err)
		}
		if AppConfig.Server.Port != "12700" {
			t.Errorf("Expected default port, got %q", AppConfig.Server.Port)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "server:\n  port: \"9999\"\nstorage:\n  backend: s3\n  s3:\n    bucket: imgs\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		if err := LoadConfig(path); err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if AppConfig.Server.Port != "9999" {
			t.Errorf("Expected port '9999', got %q", AppConfig.Server.Port)
		}
		if AppConfig.Storage.Backend != "s3" {
			t.Errorf("Expected storage backend 's3', got %q", AppConfig.Storage.Backend)
		}
		if AppConfig.Storage.S3.Bucket != "imgs" {
			t.Errorf("Expected bucket 'imgs', got %q", AppConfig.Storage.S3.Bucket)
		}
		// Untouched sections keep their defaults.
		if AppConfig.Database.Path != "./blogmod.db" {
			t.Errorf("Expected default database path, got %q", AppConfig.Database.Path)
		}
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("server: [not: a: map"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := LoadConfig(path); err == nil {
			t.Error("Expected error for invalid yaml")
		}
	})
}
