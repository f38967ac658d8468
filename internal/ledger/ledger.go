package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Header is the first row of a CSV ledger
var Header = []string{"flickr_id", "title", "desc", "tags", "machine_tags", "flickr_url"}

// Row is one photo already present on the photo host
type Row struct {
	FlickrID    string `parquet:"flickr_id"`
	Title       string `parquet:"title"`
	Description string `parquet:"desc"`
	Tags        string `parquet:"tags"`
	MachineTags string `parquet:"machine_tags"`
	URL         string `parquet:"flickr_url"`
}

func (r Row) record() []string {
	return []string{r.FlickrID, r.Title, r.Description, r.Tags, r.MachineTags, r.URL}
}

// EscapeNewlines replaces line breaks with a literal \n so a description
// stays on one ledger line
func EscapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// Writer appends ledger rows
type Writer interface {
	Write(row Row) error
	Close() error
}

// CSVWriter writes rows to a CSV file, flushing after each row so rows
// written before a failure survive it
type CSVWriter struct {
	f *os.File
	w *csv.Writer
}

// CreateCSV truncates path and writes the header row
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}

	w := &CSVWriter{f: f, w: csv.NewWriter(f)}
	if err := w.writeRecord(Header); err != nil {
		f.Close()
		return nil, err
	}

	return w, nil
}

func (w *CSVWriter) Write(row Row) error {
	return w.writeRecord(row.record())
}

func (w *CSVWriter) writeRecord(record []string) error {
	if err := w.w.Write(record); err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	return nil
}

func (w *CSVWriter) Close() error {
	w.w.Flush()
	return errors.Join(w.w.Error(), w.f.Close())
}

// ParquetWriter streams rows into a Parquet file
type ParquetWriter struct {
	f *os.File
	w *parquet.GenericWriter[Row]
}

// CreateParquet truncates path and prepares a Parquet writer
func CreateParquet(path string) (*ParquetWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet ledger: %w", err)
	}
	return &ParquetWriter{f: f, w: parquet.NewGenericWriter[Row](f)}, nil
}

func (w *ParquetWriter) Write(row Row) error {
	if _, err := w.w.Write([]Row{row}); err != nil {
		return fmt.Errorf("failed to write parquet row: %w", err)
	}
	return nil
}

// Close writes the Parquet footer and closes the file
func (w *ParquetWriter) Close() error {
	return errors.Join(w.w.Close(), w.f.Close())
}

type multiWriter []Writer

// Multi duplicates every row to each writer
func Multi(writers ...Writer) Writer {
	if len(writers) == 1 {
		return writers[0]
	}
	return multiWriter(writers)
}

func (m multiWriter) Write(row Row) error {
	for _, w := range m {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}

// Read loads a ledger from a .csv or .parquet file
func Read(path string) ([]Row, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return readParquet(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported ledger format: %s (supported: .csv, .parquet)", ext)
	}
}

func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	var rows []Row
	for line := 1; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ledger line %d: %w", line, err)
		}
		if line == 1 && record[0] == Header[0] {
			continue
		}
		rows = append(rows, Row{
			FlickrID:    record[0],
			Title:       record[1],
			Description: record[2],
			Tags:        record[3],
			MachineTags: record[4],
			URL:         record[5],
		})
	}

	return rows, nil
}

func readParquet(path string) ([]Row, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet ledger: %w", err)
	}
	return rows, nil
}
