package uploader

import (
	"context"

	"github.com/lehigh-university-libraries/flickrsync/internal/metadata"
	"github.com/lehigh-university-libraries/flickrsync/internal/museum"
	"github.com/lehigh-university-libraries/flickrsync/internal/tags"
)

// RecordLookup fetches collection records and resolves their fields
type RecordLookup interface {
	Fetch(ctx context.Context, identifier string) (*museum.Record, error)
	Resolve(ctx context.Context, record *museum.Record) museum.Fields
}

// Enricher turns a record identifier into upload metadata
type Enricher struct {
	Records         RecordLookup
	TagStyle        tags.Style
	ObjectURLPrefix string
}

// Enrich looks up identifier and assembles its title, description and tags.
// An error means the record could not be fetched; missing fields never fail.
func (e *Enricher) Enrich(ctx context.Context, identifier string) (*metadata.Metadata, error) {
	record, err := e.Records.Fetch(ctx, identifier)
	if err != nil {
		return nil, err
	}

	fields := e.Records.Resolve(ctx, record)

	return &metadata.Metadata{
		Identifier:  identifier,
		Title:       fields.Title,
		Description: metadata.Describe(identifier, fields.Title, fields.Description, fields.CreditLine, e.ObjectURLPrefix),
		Tags:        tags.Normalize(fields.Keepers, e.TagStyle),
	}, nil
}
