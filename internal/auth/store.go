package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultTokenPath is where credentials are kept between runs
const DefaultTokenPath = ".flickr/token.json"

// ErrNoCredentials is returned when no token has been stored yet
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is a Flickr OAuth access token and the account it belongs to
type Credentials struct {
	Token    string `json:"oauth_token"`
	Secret   string `json:"oauth_token_secret"`
	UserNSID string `json:"user_nsid,omitempty"`
	Username string `json:"username,omitempty"`
	Perms    string `json:"perms,omitempty"`
}

// Store persists credentials as JSON on disk
type Store struct {
	Path string
}

// NewStore returns a store at path, or DefaultTokenPath when empty
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultTokenPath
	}
	return &Store{Path: path}
}

// Exists reports whether a token file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the stored credentials
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", s.Path, err)
	}
	if creds.Token == "" || creds.Secret == "" {
		return nil, ErrNoCredentials
	}

	return &creds, nil
}

// Save writes credentials, readable only by the current user
func (s *Store) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
