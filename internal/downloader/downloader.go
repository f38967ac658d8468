package downloader

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/lehigh-university-libraries/flickrsync/internal/flickr"
	"github.com/lehigh-university-libraries/flickrsync/internal/ledger"
	"github.com/lehigh-university-libraries/flickrsync/internal/progress"
	"github.com/lehigh-university-libraries/flickrsync/internal/report"
)

// PhotoLister is the part of the photo host the download direction needs
type PhotoLister interface {
	flickr.Account
	Photos(ctx context.Context, userID string, extras []string, perPage int) iter.Seq2[flickr.Photo, error]
}

// Options configures a download run
type Options struct {
	Extras  []string
	PerPage int
	// Progress builds the per-run progress bar; nil disables it
	Progress func(total int) progress.Bar
}

// Pipeline writes one ledger row per photo on the account
type Pipeline struct {
	photos PhotoLister
	ledger ledger.Writer
	opts   Options
}

// New creates a download pipeline writing to w. The caller owns w and closes it.
func New(photos PhotoLister, w ledger.Writer, opts Options) *Pipeline {
	if len(opts.Extras) == 0 {
		opts.Extras = flickr.DefaultExtras
	}
	return &Pipeline{photos: photos, ledger: w, opts: opts}
}

// Run walks the account's photos. Any listing or write error aborts the run;
// rows already written stay in the ledger.
func (p *Pipeline) Run(ctx context.Context) (*report.Run, error) {
	run := report.NewRun("download")
	defer run.Finish()

	user, person, err := flickr.Login(ctx, p.photos)
	if err != nil {
		return run, err
	}
	run.User = user.Username.String()
	run.Total = person.PhotoCount()

	var bar progress.Bar = progress.Noop{}
	if p.opts.Progress != nil {
		bar = p.opts.Progress(run.Total)
	}

	slog.Info("Downloading metadata...", "expected", run.Total)
	for photo, err := range p.photos.Photos(ctx, user.ID, p.opts.Extras, p.opts.PerPage) {
		if err != nil {
			return run, fmt.Errorf("failed to list photos: %w", err)
		}

		if err := p.ledger.Write(Row(photo)); err != nil {
			return run, err
		}
		slog.Debug("Wrote record", "id", photo.ID)

		run.Add(report.Item{Name: photo.ID, Title: photo.Title, Status: report.StatusWritten})
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if run.Written == 0 {
		slog.Info("No photos on account")
	}
	slog.Info("Complete.", "written", run.Written)

	return run, nil
}

// Row converts a listing entry into a ledger row
func Row(p flickr.Photo) ledger.Row {
	return ledger.Row{
		FlickrID:    p.ID,
		Title:       p.Title,
		Description: ledger.EscapeNewlines(p.Description.String()),
		Tags:        p.Tags,
		MachineTags: p.MachineTags,
		URL:         p.URLOriginal,
	}
}
