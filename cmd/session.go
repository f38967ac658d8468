package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/flickrsync/internal/auth"
	"github.com/lehigh-university-libraries/flickrsync/internal/config"
	"github.com/lehigh-university-libraries/flickrsync/internal/flickr"
	"github.com/lehigh-university-libraries/flickrsync/internal/logging"
)

func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath, true)
	}
	return config.Load(config.DefaultPath, false)
}

// startLogging installs the logger for a command. defaultFile is used unless
// --log-file overrides it; "-" disables the file.
func startLogging(cmd *cobra.Command, opts *globalOptions, defaultFile string) (func(), error) {
	file := defaultFile
	if cmd.Flags().Changed("log-file") {
		file = opts.logFile
	}
	if file == "-" {
		file = ""
	}

	closeFn, err := logging.Setup(logging.Options{
		Verbose: opts.verbose,
		File:    file,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	return func() {
		if err := closeFn(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to close log file: %v\n", err)
		}
	}, nil
}

// connect resolves credentials, running the interactive OAuth flow when no
// valid token is stored, and returns a signed Flickr client
func connect(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*flickr.Client, *auth.Credentials, error) {
	if err := cfg.RequireFlickr(); err != nil {
		return nil, nil, err
	}

	oauthConfig := auth.NewConfig(cfg.Flickr.APIKey, cfg.Flickr.APISecret)
	store := auth.NewStore(cfg.Flickr.TokenPath)

	interactive := &auth.InteractiveProvider{
		Exchanger: auth.NewExchanger(oauthConfig),
		Store:     store,
		In:        in,
		Out:       out,
	}

	validate := func(ctx context.Context, creds *auth.Credentials) error {
		client := flickr.NewClient(cfg.Flickr.APIKey, creds.HTTPClient(ctx, oauthConfig))
		info, err := client.CheckToken(ctx, creds.Token)
		if err != nil {
			return err
		}
		if !info.CanWrite() {
			return fmt.Errorf("token has %q permission, %q required", info.Perms, auth.Perms)
		}
		creds.UserNSID = info.User.NSID
		creds.Username = info.User.Username
		return nil
	}

	creds, err := auth.Resolve(ctx, store, interactive, validate)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("Using Flickr token", "path", store.Path, "user", creds.Username)
	return flickr.NewClient(cfg.Flickr.APIKey, creds.HTTPClient(ctx, oauthConfig)), creds, nil
}

// museumHTTPClient has no timeout; runs are bounded by the command context
func museumHTTPClient() *http.Client {
	return &http.Client{}
}
