package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lehigh-university-libraries/flickrsync/internal/auth"
	"github.com/lehigh-university-libraries/flickrsync/internal/flickr"
	"github.com/lehigh-university-libraries/flickrsync/internal/metadata"
	"github.com/lehigh-university-libraries/flickrsync/internal/museum"
	"github.com/lehigh-university-libraries/flickrsync/internal/photo"
	"github.com/lehigh-university-libraries/flickrsync/internal/tags"
)

// DefaultPath is read when present and no --config flag is given
const DefaultPath = "flickrsync.toml"

// Flickr holds the API key pair and token location
type Flickr struct {
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
	TokenPath string `toml:"token_path"`
}

// Museum holds the collection API endpoints
type Museum struct {
	RecordBaseURL   string `toml:"record_base_url"`
	ObjectURLPrefix string `toml:"object_url_prefix"`
}

// Upload configures the upload direction
type Upload struct {
	Pattern     string `toml:"pattern"`
	TagStyle    string `toml:"tag_style"`
	FileList    string `toml:"file_list"`
	LogFile     string `toml:"log_file"`
	IsPublic    bool   `toml:"is_public"`
	IsFriend    bool   `toml:"is_friend"`
	IsFamily    bool   `toml:"is_family"`
	ContentType int    `toml:"content_type"`
}

// Download configures the download direction
type Download struct {
	Ledger  string   `toml:"ledger"`
	LogFile string   `toml:"log_file"`
	Extras  []string `toml:"extras"`
	PerPage int      `toml:"per_page"`
}

type Config struct {
	Flickr   Flickr   `toml:"flickr"`
	Museum   Museum   `toml:"museum"`
	Upload   Upload   `toml:"upload"`
	Download Download `toml:"download"`
}

// Default returns the settings used by the original upload and download jobs
func Default() Config {
	return Config{
		Flickr: Flickr{
			TokenPath: auth.DefaultTokenPath,
		},
		Museum: Museum{
			RecordBaseURL:   museum.DefaultRecordBaseURL,
			ObjectURLPrefix: metadata.DefaultObjectURLPrefix,
		},
		Upload: Upload{
			Pattern:     photo.DefaultPattern,
			TagStyle:    string(tags.Quote),
			FileList:    "file_list.csv",
			LogFile:     "flickrUpload.log",
			IsPublic:    true,
			ContentType: 1,
		},
		Download: Download{
			Ledger:  "flickrResults.csv",
			LogFile: "flickrDownload.log",
			Extras:  append([]string(nil), flickr.DefaultExtras...),
			PerPage: flickr.DefaultPerPage,
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is only an error when explicit is true.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv lets FLICKR_KEY and FLICKR_SECRET (usually from .env) win over the file
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("FLICKR_KEY")); v != "" {
		c.Flickr.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("FLICKR_SECRET")); v != "" {
		c.Flickr.APISecret = v
	}
	if v := strings.TrimSpace(os.Getenv("MUSEUM_API_URL")); v != "" {
		c.Museum.RecordBaseURL = v
	}
}

func (c *Config) normalize() {
	c.Museum.RecordBaseURL = strings.TrimRight(strings.TrimSpace(c.Museum.RecordBaseURL), "/")
	if c.Flickr.TokenPath == "" {
		c.Flickr.TokenPath = auth.DefaultTokenPath
	}
	if c.Upload.Pattern == "" {
		c.Upload.Pattern = photo.DefaultPattern
	}
	if len(c.Download.Extras) == 0 {
		c.Download.Extras = append([]string(nil), flickr.DefaultExtras...)
	}
	if c.Download.PerPage == 0 {
		c.Download.PerPage = flickr.DefaultPerPage
	}
}

// Validate checks values that would otherwise fail mid-run
func (c *Config) Validate() error {
	if _, err := tags.ParseStyle(c.Upload.TagStyle); err != nil {
		return fmt.Errorf("upload.tag_style: %w", err)
	}
	if c.Upload.ContentType < 0 || c.Upload.ContentType > 3 {
		return fmt.Errorf("upload.content_type must be between 1 and 3, got %d", c.Upload.ContentType)
	}
	if c.Download.PerPage < 1 || c.Download.PerPage > flickr.DefaultPerPage {
		return fmt.Errorf("download.per_page must be between 1 and %d, got %d", flickr.DefaultPerPage, c.Download.PerPage)
	}
	if c.Museum.RecordBaseURL == "" {
		return errors.New("museum.record_base_url is required")
	}
	return nil
}

// RequireFlickr reports missing API credentials
func (c *Config) RequireFlickr() error {
	if c.Flickr.APIKey == "" || c.Flickr.APISecret == "" {
		return errors.New("FLICKR_KEY and FLICKR_SECRET must be set (environment, .env, or [flickr] in the config file)")
	}
	return nil
}
