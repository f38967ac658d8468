package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// FileListHeader is the first row of the upload file list
var FileListHeader = []string{"number", "filename", "identifier", "size", "captured"}

// FileEntry is one local file considered for upload
type FileEntry struct {
	Number     int
	Filename   string
	Identifier string
	Size       string
	Captured   time.Time
}

// FileList records every file an upload run processes
type FileList struct {
	f *os.File
	w *csv.Writer
}

// CreateFileList truncates path and writes the header row
func CreateFileList(path string) (*FileList, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file list: %w", err)
	}

	fl := &FileList{f: f, w: csv.NewWriter(f)}
	if err := fl.write(FileListHeader); err != nil {
		f.Close()
		return nil, err
	}

	return fl, nil
}

func (fl *FileList) Add(e FileEntry) error {
	captured := ""
	if !e.Captured.IsZero() {
		captured = e.Captured.Format(time.RFC3339)
	}
	return fl.write([]string{strconv.Itoa(e.Number), e.Filename, e.Identifier, e.Size, captured})
}

func (fl *FileList) write(record []string) error {
	if err := fl.w.Write(record); err != nil {
		return fmt.Errorf("failed to write file list: %w", err)
	}
	fl.w.Flush()
	return fl.w.Error()
}

func (fl *FileList) Close() error {
	fl.w.Flush()
	return errors.Join(fl.w.Error(), fl.f.Close())
}
