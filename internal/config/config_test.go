package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("FLICKR_KEY", "")
	t.Setenv("FLICKR_SECRET", "")
	t.Setenv("MUSEUM_API_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), false)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Upload.Pattern != "*.jpg" || cfg.Upload.TagStyle != "quote" || !cfg.Upload.IsPublic {
		t.Errorf("Unexpected upload defaults %+v", cfg.Upload)
	}
	if cfg.Download.Ledger != "flickrResults.csv" || cfg.Download.PerPage != 500 {
		t.Errorf("Unexpected download defaults %+v", cfg.Download)
	}
	if err := cfg.RequireFlickr(); err == nil {
		t.Error("Expected missing credentials error")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), true); err == nil {
		t.Error("Expected error for missing explicit config")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flickrsync.toml")
	content := `
[flickr]
api_key = "file-key"
api_secret = "file-secret"

[museum]
record_base_url = "https://api.example.org/object/"

[upload]
tag_style = "hyphen"
is_public = false

[download]
per_page = 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FLICKR_KEY", "env-key")
	t.Setenv("FLICKR_SECRET", "")
	t.Setenv("MUSEUM_API_URL", "")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Flickr.APIKey != "env-key" {
		t.Errorf("Expected env to override api_key, got %s", cfg.Flickr.APIKey)
	}
	if cfg.Flickr.APISecret != "file-secret" {
		t.Errorf("Expected file api_secret, got %s", cfg.Flickr.APISecret)
	}
	if cfg.Museum.RecordBaseURL != "https://api.example.org/object" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Museum.RecordBaseURL)
	}
	if cfg.Upload.TagStyle != "hyphen" || cfg.Upload.IsPublic {
		t.Errorf("Unexpected upload config %+v", cfg.Upload)
	}
	if cfg.Upload.FileList != "file_list.csv" {
		t.Errorf("Expected default file list to survive, got %s", cfg.Upload.FileList)
	}
	if cfg.Download.PerPage != 100 {
		t.Errorf("Expected per_page 100, got %d", cfg.Download.PerPage)
	}
	if err := cfg.RequireFlickr(); err != nil {
		t.Errorf("Expected credentials to be complete: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "tag style", modify: func(c *Config) { c.Upload.TagStyle = "camel" }},
		{name: "content type", modify: func(c *Config) { c.Upload.ContentType = 7 }},
		{name: "per page", modify: func(c *Config) { c.Download.PerPage = 1000 }},
		{name: "record url", modify: func(c *Config) { c.Museum.RecordBaseURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
