package museum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// DefaultRecordBaseURL is the Auckland Museum human history object endpoint
const DefaultRecordBaseURL = "http://api.aucklandmuseum.com/id/humanhistory/object"

// StatusError reports a non-200 response from the museum API
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("museum API returned status %d for %s", e.StatusCode, e.URL)
}

// Client looks up collection records from the museum API
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a new record lookup client. A nil httpClient uses a
// client without a timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultRecordBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// RecordURL returns the API URL of the record with the given identifier
func (c *Client) RecordURL(identifier string) string {
	return c.BaseURL + "/" + url.PathEscape(identifier)
}

// Fetch retrieves the record for identifier. A non-200 response is returned
// as a *StatusError.
func (c *Client) Fetch(ctx context.Context, identifier string) (*Record, error) {
	recordURL := c.RecordURL(identifier)

	body, err := c.get(ctx, recordURL)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded record", "url", recordURL)
	slog.Debug("Response JSON", "identifier", identifier, "body", string(body))

	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", identifier, err)
	}

	return &record, nil
}

// OtherTitle fetches the first value of an other title resource
func (c *Client) OtherTitle(ctx context.Context, resourceURL string) (string, bool) {
	values, err := c.values(ctx, resourceURL)
	if err != nil {
		slog.Debug("Other title unavailable", "url", resourceURL, "error", err)
		return "", false
	}
	return values.First()
}

// Keepers fetches the department names of a current keeper relation
func (c *Client) Keepers(ctx context.Context, resourceURL string) ([]string, error) {
	values, err := c.values(ctx, resourceURL)
	if err != nil {
		return nil, err
	}
	return values.All(), nil
}

// Resolve applies the fallback chain to every field of a record. Missing
// fields degrade to placeholders and never produce an error.
func (c *Client) Resolve(ctx context.Context, record *Record) Fields {
	fields := Fields{
		Title:       NoTitle,
		Description: NoDescription,
		CreditLine:  NoCreditLine,
	}

	if title, ok := record.Title(); ok {
		fields.Title = title
	}

	if desc, ok := record.Description(); ok {
		fields.Description = desc
	} else if otherURL, ok := record.OtherTitleURL(); ok {
		if other, ok := c.OtherTitle(ctx, otherURL); ok {
			fields.Description = other
		}
	}

	if credit, ok := record.CreditLine(); ok {
		fields.CreditLine = credit
	}

	keeperURL, ok := record.KeeperURL()
	if !ok {
		slog.Debug("No keepers entry in JSON. Tags will be blank.")
		return fields
	}

	keepers, err := c.Keepers(ctx, keeperURL)
	if err != nil {
		slog.Debug("Keepers unavailable. Tags will be blank.", "url", keeperURL, "error", err)
		return fields
	}
	fields.Keepers = keepers

	return fields
}

// values fetches a sub-resource holding an rdf:value list
func (c *Client) values(ctx context.Context, resourceURL string) (Values, error) {
	body, err := c.get(ctx, resourceURL)
	if err != nil {
		return nil, err
	}

	var resource struct {
		Values Values `json:"rdf:value"`
	}
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", resourceURL, err)
	}

	return resource.Values, nil
}

func (c *Client) get(ctx context.Context, resourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", resourceURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: resourceURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", resourceURL, err)
	}

	return body, nil
}
