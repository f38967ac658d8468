package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFanoutRespectsLevels(t *testing.T) {
	var info, debug bytes.Buffer
	logger := slog.New(NewFanoutHandler(
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("Response JSON", "identifier", "70152")
	logger.Info("Processing file", "file", "70152_001.jpg")

	if strings.Contains(info.String(), "Response JSON") {
		t.Error("Expected debug record to be filtered from info handler")
	}
	if !strings.Contains(info.String(), "Processing file") {
		t.Error("Expected info record in info handler")
	}
	if !strings.Contains(debug.String(), "Response JSON") || !strings.Contains(debug.String(), "Processing file") {
		t.Errorf("Expected both records in debug handler, got %q", debug.String())
	}
}

func TestFanoutWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewFanoutHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)).With("run", "upload")

	logger.Info("Finished")

	for _, out := range []string{a.String(), b.String()} {
		if !strings.Contains(out, "run=upload") {
			t.Errorf("Expected attribute in output, got %q", out)
		}
	}
}

func TestSetupWritesLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "flickrUpload.log")
	var console bytes.Buffer

	closeFn, err := Setup(Options{File: path, Console: &console})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}

	slog.Debug("Wrote record", "id", "1")
	slog.Info("Finished!")

	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Wrote record") {
		t.Errorf("Expected debug line in log file, got %q", data)
	}
	if strings.Contains(console.String(), "Wrote record") {
		t.Errorf("Expected debug line filtered from console, got %q", console.String())
	}
}
