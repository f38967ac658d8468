package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
)

// Flickr OAuth 1.0a endpoints
var Endpoint = oauth1.Endpoint{
	RequestTokenURL: "https://www.flickr.com/services/oauth/request_token",
	AuthorizeURL:    "https://www.flickr.com/services/oauth/authorize",
	AccessTokenURL:  "https://www.flickr.com/services/oauth/access_token",
}

// Perms is the permission level requested for uploads
const Perms = "write"

// NewConfig builds the OAuth consumer config for an API key pair
func NewConfig(apiKey, apiSecret string) *oauth1.Config {
	return &oauth1.Config{
		ConsumerKey:    apiKey,
		ConsumerSecret: apiSecret,
		CallbackURL:    "oob",
		Endpoint:       Endpoint,
	}
}

// HTTPClient returns a client signing every request with these credentials
func (c *Credentials) HTTPClient(ctx context.Context, config *oauth1.Config) *http.Client {
	return config.Client(ctx, oauth1.NewToken(c.Token, c.Secret))
}

// Provider supplies credentials for the photo host
type Provider interface {
	Credentials(ctx context.Context) (*Credentials, error)
}

// StoredProvider reads credentials persisted by an earlier run
type StoredProvider struct {
	Store *Store
}

func (p *StoredProvider) Credentials(ctx context.Context) (*Credentials, error) {
	return p.Store.Load()
}

// Exchanger performs the OAuth 1.0a out-of-band token exchange
type Exchanger interface {
	RequestToken() (requestToken, requestSecret string, err error)
	AuthorizationURL(requestToken string) (string, error)
	AccessToken(requestToken, requestSecret, verifier string) (accessToken, accessSecret string, err error)
}

// oauthExchanger adapts oauth1.Config to Exchanger, adding Flickr's perms parameter
type oauthExchanger struct {
	config *oauth1.Config
	perms  string
}

// NewExchanger wraps an OAuth config for the interactive flow
func NewExchanger(config *oauth1.Config) Exchanger {
	return &oauthExchanger{config: config, perms: Perms}
}

func (e *oauthExchanger) RequestToken() (string, string, error) {
	return e.config.RequestToken()
}

func (e *oauthExchanger) AuthorizationURL(requestToken string) (string, error) {
	u, err := e.config.AuthorizationURL(requestToken)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("perms", e.perms)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (e *oauthExchanger) AccessToken(requestToken, requestSecret, verifier string) (string, string, error) {
	return e.config.AccessToken(requestToken, requestSecret, verifier)
}

// InteractiveProvider asks the operator to authorise the app in a browser
// and paste the verifier code, then stores the resulting token
type InteractiveProvider struct {
	Exchanger Exchanger
	Store     *Store
	In        io.Reader
	Out       io.Writer
}

func (p *InteractiveProvider) Credentials(ctx context.Context) (*Credentials, error) {
	requestToken, requestSecret, err := p.Exchanger.RequestToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get request token: %w", err)
	}

	authURL, err := p.Exchanger.AuthorizationURL(requestToken)
	if err != nil {
		return nil, fmt.Errorf("failed to build authorisation URL: %w", err)
	}

	slog.Info("Authorisation URL", "url", authURL)
	fmt.Fprintf(p.Out, "\nOpen this URL in a web browser, authorise this app, and you should see a verifier code in the format nnn-nnn-nnn.\n\n  %s\n\n", authURL)
	fmt.Fprint(p.Out, "Paste the code here: ")

	verifier, err := readLine(ctx, p.In)
	if err != nil {
		return nil, fmt.Errorf("failed to read verifier code: %w", err)
	}
	if verifier == "" {
		return nil, errors.New("no verifier code entered")
	}

	accessToken, accessSecret, err := p.Exchanger.AccessToken(requestToken, requestSecret, verifier)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange verifier code: %w", err)
	}

	creds := &Credentials{Token: accessToken, Secret: accessSecret, Perms: Perms}
	if p.Store != nil {
		if err := p.Store.Save(creds); err != nil {
			return nil, err
		}
		slog.Info("Stored access token", "path", p.Store.Path)
	}

	return creds, nil
}

func readLine(ctx context.Context, in io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		ch <- result{strings.TrimSpace(line), err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// Validator checks stored credentials against the photo host
type Validator func(ctx context.Context, creds *Credentials) error

// Resolve returns usable credentials: stored ones when a token file exists
// and passes validate, otherwise the result of the interactive provider
func Resolve(ctx context.Context, store *Store, interactive Provider, validate Validator) (*Credentials, error) {
	if store.Exists() {
		creds, err := (&StoredProvider{Store: store}).Credentials(ctx)
		switch {
		case err != nil:
			slog.Warn("Stored token unreadable", "path", store.Path, "error", err)
		case validate == nil:
			return creds, nil
		default:
			err := validate(ctx, creds)
			if err == nil {
				return creds, nil
			}
			slog.Warn("Stored token rejected", "error", err)
		}
	}

	slog.Info("No valid token stored. Getting a new one.")
	if interactive == nil {
		return nil, ErrNoCredentials
	}

	creds, err := interactive.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorisation failed: %w", err)
	}

	return creds, nil
}
