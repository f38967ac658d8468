package flickr

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultRESTURL   = "https://api.flickr.com/services/rest/"
	DefaultUploadURL = "https://up.flickr.com/services/upload/"

	// DefaultPerPage is the largest page size flickr.people.getPhotos allows
	DefaultPerPage = 500
)

// DefaultExtras are the listing fields written to the ledger
var DefaultExtras = []string{"description", "tags", "machine_tags", "url_o"}

// Client calls the Flickr REST and upload endpoints. The HTTP client is
// expected to sign requests (see auth.Credentials.HTTPClient).
type Client struct {
	APIKey    string
	RESTURL   string
	UploadURL string

	httpClient *http.Client
}

// NewClient creates a Flickr client using httpClient for every request
func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		APIKey:     apiKey,
		RESTURL:    DefaultRESTURL,
		UploadURL:  DefaultUploadURL,
		httpClient: httpClient,
	}
}

// TestLogin returns the account the credentials belong to
func (c *Client) TestLogin(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.call(ctx, "flickr.test.login", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// PersonInfo returns account statistics for userID
func (c *Client) PersonInfo(ctx context.Context, userID string) (*Person, error) {
	var resp struct {
		Person Person `json:"person"`
	}
	params := url.Values{"user_id": {userID}}
	if err := c.call(ctx, "flickr.people.getInfo", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Person, nil
}

// CheckToken reports the permissions granted to an access token
func (c *Client) CheckToken(ctx context.Context, token string) (*TokenInfo, error) {
	var resp struct {
		OAuth TokenInfo `json:"oauth"`
	}
	params := url.Values{"oauth_token": {token}}
	if err := c.call(ctx, "flickr.auth.oauth.checkToken", params, &resp); err != nil {
		return nil, err
	}
	return &resp.OAuth, nil
}

// Photos walks every photo of userID page by page. The sequence is lazy and
// stops at the first error, which is yielded with a zero Photo.
func (c *Client) Photos(ctx context.Context, userID string, extras []string, perPage int) iter.Seq2[Photo, error] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return func(yield func(Photo, error) bool) {
		for page := 1; ; page++ {
			result, err := c.photosPage(ctx, userID, extras, perPage, page)
			if err != nil {
				yield(Photo{}, err)
				return
			}

			slog.Debug("Fetched photo page", "page", page, "pages", int(result.Pages), "photos", len(result.Photo))

			for _, p := range result.Photo {
				if !yield(p, nil) {
					return
				}
			}

			if len(result.Photo) == 0 || page >= int(result.Pages) {
				return
			}
		}
	}
}

func (c *Client) photosPage(ctx context.Context, userID string, extras []string, perPage, page int) (*photosPage, error) {
	var resp struct {
		Photos photosPage `json:"photos"`
	}
	params := url.Values{
		"user_id":  {userID},
		"extras":   {strings.Join(extras, ",")},
		"per_page": {fmt.Sprint(perPage)},
		"page":     {fmt.Sprint(page)},
	}
	if err := c.call(ctx, "flickr.people.getPhotos", params, &resp); err != nil {
		return nil, err
	}
	return &resp.Photos, nil
}

// call invokes a REST method and decodes its JSON payload into out
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("method", method)
	query.Set("api_key", c.APIKey)
	query.Set("format", "json")
	query.Set("nojsoncallback", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RESTURL+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", method, resp.StatusCode, string(body))
	}

	var status struct {
		Stat    string `json:"stat"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if status.Stat != "ok" {
		return &APIError{Method: method, Code: status.Code, Message: status.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	return nil
}

// Visibility controls who can see an uploaded photo
type Visibility struct {
	Public      bool
	Friends     bool
	Family      bool
	ContentType int // 1 photo, 2 screenshot, 3 other
	Hidden      bool
}

// UploadRequest is a single photo upload
type UploadRequest struct {
	Path        string
	Title       string
	Description string
	Tags        string
	Visibility  Visibility
}

func (r UploadRequest) params() url.Values {
	params := url.Values{
		"title":       {r.Title},
		"description": {r.Description},
		"tags":        {r.Tags},
		"is_public":   {boolParam(r.Visibility.Public)},
		"is_friend":   {boolParam(r.Visibility.Friends)},
		"is_family":   {boolParam(r.Visibility.Family)},
	}
	if r.Visibility.ContentType > 0 {
		params.Set("content_type", fmt.Sprint(r.Visibility.ContentType))
	}
	if r.Visibility.Hidden {
		params.Set("hidden", "2")
	} else {
		params.Set("hidden", "1")
	}
	return params
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

type uploadResponse struct {
	XMLName xml.Name `xml:"rsp"`
	Stat    string   `xml:"stat,attr"`
	PhotoID string   `xml:"photoid"`
	Err     struct {
		Code int    `xml:"code,attr"`
		Msg  string `xml:"msg,attr"`
	} `xml:"err"`
}

// Upload sends a photo with its metadata and returns the new photo ID.
// Metadata travels in the query string so the OAuth signature covers it;
// the body carries only the image.
func (c *Client) Upload(ctx context.Context, r UploadRequest) (string, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", r.Path, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", filepath.Base(r.Path))
	if err != nil {
		return "", fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", r.Path, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	uploadURL := c.UploadURL + "?" + r.params().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", r.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(msg))
	}

	var result uploadResponse
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.Stat != "ok" {
		return "", &APIError{Method: "upload", Code: result.Err.Code, Message: result.Err.Msg}
	}

	return result.PhotoID, nil
}
