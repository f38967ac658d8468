package photo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rwcarlsen/goexif/exif"
)

// DefaultPattern matches the JPEGs exported from the collection management system
const DefaultPattern = "*.jpg"

// File describes a local image waiting to be uploaded
type File struct {
	Path       string
	Name       string
	Identifier string
	Size       int64
	Captured   time.Time // zero when the image carries no EXIF date
}

// Identifier returns the record identifier embedded in a filename, i.e. the
// part before the first underscore (70152_001.jpg -> 70152). Names without an
// underscore are returned whole.
func Identifier(filename string) string {
	id, _, _ := strings.Cut(filepath.Base(filename), "_")
	return id
}

// Find lists the files in dir matching pattern, sorted by name
func Find(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", m, err)
		}
		if info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)

	return files, nil
}

// Stat builds a File for path, reading the EXIF capture time when available
func Stat(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	f := &File{
		Path:       path,
		Name:       info.Name(),
		Identifier: Identifier(info.Name()),
		Size:       info.Size(),
	}

	captured, err := CaptureTime(path)
	if err != nil {
		slog.Debug("No EXIF capture time", "file", f.Name, "error", err)
	} else {
		f.Captured = captured
	}

	return f, nil
}

// CaptureTime extracts the EXIF DateTime of an image
func CaptureTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	return x.DateTime()
}

// HumanSize formats a byte count for log output, e.g. "4.3 MiB"
func HumanSize(size int64) string {
	if size == 1 {
		return "1 byte"
	}
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// Percent formats a completion percentage with two decimals, or none when whole
func Percent(done, total int) string {
	if total <= 0 {
		return "0"
	}
	pct := float64(done) * 100 / float64(total)
	if pct == float64(int(pct)) {
		return fmt.Sprintf("%d", int(pct))
	}
	return fmt.Sprintf("%.2f", pct)
}
