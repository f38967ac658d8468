package uploader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/flickrsync/internal/flickr"
	"github.com/lehigh-university-libraries/flickrsync/internal/ledger"
	"github.com/lehigh-university-libraries/flickrsync/internal/museum"
	"github.com/lehigh-university-libraries/flickrsync/internal/photo"
	"github.com/lehigh-university-libraries/flickrsync/internal/progress"
	"github.com/lehigh-university-libraries/flickrsync/internal/report"
)

// PhotoService is the part of the photo host the upload direction needs
type PhotoService interface {
	flickr.Account
	Upload(ctx context.Context, r flickr.UploadRequest) (string, error)
}

// Options configures an upload run
type Options struct {
	Dir        string
	Pattern    string
	FileList   string // empty disables the file list
	DryRun     bool
	Visibility flickr.Visibility
	// Progress builds the per-run progress bar; nil disables it
	Progress func(total int) progress.Bar
}

// Pipeline uploads every matching local image with metadata from the museum API
type Pipeline struct {
	enricher *Enricher
	photos   PhotoService
	opts     Options
}

// New creates an upload pipeline. photos may be nil for dry runs.
func New(enricher *Enricher, photos PhotoService, opts Options) *Pipeline {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Pattern == "" {
		opts.Pattern = photo.DefaultPattern
	}
	return &Pipeline{enricher: enricher, photos: photos, opts: opts}
}

// Run logs in, enumerates the files and processes them one at a time. Only
// login, enumeration and file list errors are returned; per-file failures
// are logged and recorded in the run summary.
func (p *Pipeline) Run(ctx context.Context) (*report.Run, error) {
	run := report.NewRun("upload")
	defer run.Finish()

	if !p.opts.DryRun {
		if p.photos == nil {
			return run, errors.New("no photo service configured")
		}
		user, _, err := flickr.Login(ctx, p.photos)
		if err != nil {
			return run, err
		}
		run.User = user.Username.String()
	}

	files, err := photo.Find(p.opts.Dir, p.opts.Pattern)
	if err != nil {
		return run, fmt.Errorf("failed to list files: %w", err)
	}

	if len(files) == 0 {
		slog.Info("No files found. Exiting.", "dir", p.opts.Dir, "pattern", p.opts.Pattern)
		return run, nil
	}

	run.Total = len(files)
	slog.Info("Found files", "count", len(files), "pattern", p.opts.Pattern)

	var fileList *ledger.FileList
	if p.opts.FileList != "" {
		fileList, err = ledger.CreateFileList(p.opts.FileList)
		if err != nil {
			return run, err
		}
		defer func() {
			if err := fileList.Close(); err != nil {
				slog.Error("Failed to close file list", "path", p.opts.FileList, "error", err)
			}
		}()
	}

	var bar progress.Bar = progress.Noop{}
	if p.opts.Progress != nil {
		bar = p.opts.Progress(len(files))
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		item, f := p.process(ctx, i+1, len(files), path)
		run.Add(item)

		if fileList != nil && f != nil {
			entry := ledger.FileEntry{
				Number:     i + 1,
				Filename:   f.Name,
				Identifier: f.Identifier,
				Size:       photo.HumanSize(f.Size),
				Captured:   f.Captured,
			}
			if err := fileList.Add(entry); err != nil {
				return run, err
			}
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	slog.Info("Finished!",
		"total", run.Total,
		"uploaded", run.Uploaded,
		"skipped", run.Skipped,
		"failed", run.Failed)

	return run, nil
}

// process handles a single file; it never returns an error
func (p *Pipeline) process(ctx context.Context, n, total int, path string) (report.Item, *photo.File) {
	f, err := photo.Stat(path)
	if err != nil {
		slog.Error("Failed to read file", "file", path, "error", err)
		return report.Item{Name: path, Status: report.StatusFailed, Reason: err.Error()}, nil
	}

	item := report.Item{Name: f.Name, Identifier: f.Identifier}
	slog.Info(fmt.Sprintf("File: %s (%d of %d; %s%%)", f.Name, n, total, photo.Percent(n, total)),
		"identifier", f.Identifier)

	meta, err := p.enricher.Enrich(ctx, f.Identifier)
	if err != nil {
		var statusErr *museum.StatusError
		if errors.As(err, &statusErr) {
			slog.Info("Record not available, skipping", "identifier", f.Identifier, "status", statusErr.StatusCode)
		} else {
			slog.Warn("Record lookup failed, skipping", "identifier", f.Identifier, "error", err)
		}
		item.Status = report.StatusSkipped
		item.Reason = err.Error()
		return item, f
	}

	item.Title = meta.Title
	item.Tags = meta.Tags

	slog.Info("Metadata", "title", meta.Title, "tags", meta.Tags)
	slog.Debug("Description", "description", meta.Description)

	if p.opts.DryRun {
		slog.Info("Dry run, not uploading", "file", f.Name)
		item.Status = report.StatusDryRun
		return item, f
	}

	slog.Info(fmt.Sprintf("Uploading %s (%s)", f.Name, photo.HumanSize(f.Size)))
	photoID, err := p.photos.Upload(ctx, flickr.UploadRequest{
		Path:        f.Path,
		Title:       meta.Title,
		Description: meta.Description,
		Tags:        meta.Tags,
		Visibility:  p.opts.Visibility,
	})
	if err != nil {
		slog.Error("Upload failed", "file", f.Name, "error", err)
		item.Status = report.StatusFailed
		item.Reason = err.Error()
		return item, f
	}

	slog.Info("Done.", "file", f.Name, "photo_id", photoID)
	item.Status = report.StatusUploaded
	item.PhotoID = photoID
	return item, f
}
