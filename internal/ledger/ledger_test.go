package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"single line", "single line"},
		{"Title: A\nCredit: B", `Title: A\nCredit: B`},
		{"a\n\nb\n", `a\n\nb\n`},
	}

	for _, tt := range tests {
		if got := EscapeNewlines(tt.input); got != tt.expected {
			t.Errorf("EscapeNewlines(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flickrResults.csv")

	w, err := CreateCSV(path)
	if err != nil {
		t.Fatalf("CreateCSV returned error: %v", err)
	}

	rows := []Row{
		{FlickrID: "1", Title: "Taonga", Description: EscapeNewlines("Title: Taonga\nCredit: AM"), Tags: `natural-sciences`, URL: "https://live.staticflickr.com/1_o.jpg"},
		{FlickrID: "2", Title: "Box, carved", MachineTags: "am:id=70152"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	// Rows are flushed as they are written
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows before close, got %d lines:\n%s", len(lines), data)
	}
	if lines[0] != "flickr_id,title,desc,tags,machine_tags,flickr_url" {
		t.Errorf("Unexpected header %q", lines[0])
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}
	if got[0] != rows[0] || got[1] != rows[1] {
		t.Errorf("Rows differ:\n%+v\n%+v", got, rows)
	}
}

func TestCreateCSVHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	w, err := CreateCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestParquetAndMulti(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ledger.csv")
	pqPath := filepath.Join(dir, "ledger.parquet")

	cw, err := CreateCSV(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	pw, err := CreateParquet(pqPath)
	if err != nil {
		t.Fatal(err)
	}

	w := Multi(cw, pw)
	for _, id := range []string{"10", "11", "12"} {
		if err := w.Write(Row{FlickrID: id, Title: "t" + id}); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	for _, path := range []string{csvPath, pqPath} {
		rows, err := Read(path)
		if err != nil {
			t.Fatalf("Read(%s) returned error: %v", path, err)
		}
		if len(rows) != 3 || rows[2].FlickrID != "12" || rows[2].Title != "t12" {
			t.Errorf("Unexpected rows from %s: %+v", path, rows)
		}
	}
}

func TestReadUnsupported(t *testing.T) {
	if _, err := Read("ledger.xlsx"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFileList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_list.csv")
	fl, err := CreateFileList(path)
	if err != nil {
		t.Fatal(err)
	}

	captured := time.Date(2019, 3, 4, 10, 30, 0, 0, time.UTC)
	if err := fl.Add(FileEntry{Number: 1, Filename: "70152_001.jpg", Identifier: "70152", Size: "2.0 MiB", Captured: captured}); err != nil {
		t.Fatal(err)
	}
	if err := fl.Add(FileEntry{Number: 2, Filename: "99999_001.jpg", Identifier: "99999", Size: "1 byte"}); err != nil {
		t.Fatal(err)
	}
	if err := fl.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := "number,filename,identifier,size,captured\n" +
		"1,70152_001.jpg,70152,2.0 MiB,2019-03-04T10:30:00Z\n" +
		"2,99999_001.jpg,99999,1 byte,\n"
	if string(data) != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, data)
	}
}
