package photo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{name: "single underscore", filename: "70152_001.jpg", expected: "70152"},
		{name: "multiple underscores", filename: "70152_001_detail.jpg", expected: "70152"},
		{name: "other extension", filename: "1234_a.tif", expected: "1234"},
		{name: "with directory", filename: "/data/photos/555_back.jpg", expected: "555"},
		{name: "no underscore", filename: "70152.jpg", expected: "70152.jpg"},
		{name: "leading underscore", filename: "_001.jpg", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.filename); got != tt.expected {
				t.Errorf("Identifier(%q) = %q, expected %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2_b.jpg", "1_a.jpg", "notes.txt", "3_c.JPG"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir_x.jpg"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := Find(dir, "")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	expected := []string{filepath.Join(dir, "1_a.jpg"), filepath.Join(dir, "2_b.jpg")}
	if len(files) != len(expected) {
		t.Fatalf("Expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("files[%d] = %s, expected %s", i, files[i], expected[i])
		}
	}
}

func TestFindEmptyDirectory(t *testing.T) {
	files, err := Find(t.TempDir(), "*.jpg")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}
}

func TestStatWithoutEXIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "70152_001.jpg")
	if err := os.WriteFile(path, []byte("not really a jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat returned error: %v", err)
	}
	if f.Identifier != "70152" {
		t.Errorf("Expected identifier 70152, got %s", f.Identifier)
	}
	if f.Size != 17 {
		t.Errorf("Expected size 17, got %d", f.Size)
	}
	if !f.Captured.IsZero() {
		t.Errorf("Expected zero capture time, got %v", f.Captured)
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{1, "1 byte"},
		{43, "43 B"},
		{2048, "2.0 KiB"},
	}

	for _, tt := range tests {
		if got := HumanSize(tt.size); got != tt.expected {
			t.Errorf("HumanSize(%d) = %q, expected %q", tt.size, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total int
		expected    string
	}{
		{1, 2, "50"},
		{1, 3, "33.33"},
		{3, 3, "100"},
		{0, 0, "0"},
	}

	for _, tt := range tests {
		if got := Percent(tt.done, tt.total); got != tt.expected {
			t.Errorf("Percent(%d, %d) = %q, expected %q", tt.done, tt.total, got, tt.expected)
		}
	}
}
