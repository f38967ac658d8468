package progress

import (
	"bytes"
	"testing"
)

func TestNewOnBufferIsSilent(t *testing.T) {
	var buf bytes.Buffer
	bar := New(&buf, 3, "Uploading")

	for i := 0; i < 3; i++ {
		if err := bar.Add(1); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}
	if err := bar.Finish(); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no output on a non-terminal writer, got %q", buf.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("Expected buffer not to be a terminal")
	}
}
