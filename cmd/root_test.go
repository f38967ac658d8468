package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/flickrsync/internal/ledger"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"auth", "upload", "download", "lookup", "ledger"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %s subcommand", name)
		}
	}
}

func TestLookupCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/object/70152":
			_, _ = w.Write([]byte(`{"dc:title":[{"value":"taonga"}],"am:creditLine":[{"value":"Auckland Museum"}],
				"ecrm:P50_has_current_keeper":[{"value":"http://` + r.Host + `/keepers"}]}`))
		case "/keepers":
			_, _ = w.Write([]byte(`{"rdf:value":[{"value":"Natural Sciences"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Setenv("MUSEUM_API_URL", srv.URL+"/object")
	t.Chdir(t.TempDir())

	out, err := executeCommand(t, "lookup", "70152_001.jpg", "99999", "--tag-style", "hyphen")
	if err != nil {
		t.Fatalf("lookup returned error: %v", err)
	}

	for _, want := range []string{
		"Identifier: 70152",
		"Tags: natural-sciences",
		"Title: Taonga\nDescription: [No description]\nCredit: Auckland Museum\nhttps://www.aucklandmuseum.com/collection/object/am_humanhistory-object-70152",
		"99999: response code 404",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestUploadDryRunNoFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := executeCommand(t, "upload", "--dry-run", "--log-file", "-")
	if err != nil {
		t.Fatalf("upload returned error: %v", err)
	}
	if !strings.Contains(out, "Total:     0") {
		t.Errorf("Expected empty summary, got:\n%s", out)
	}
}

func TestUploadRequiresCredentials(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("FLICKR_KEY", "")
	t.Setenv("FLICKR_SECRET", "")

	if _, err := executeCommand(t, "upload", "--log-file", "-"); err == nil {
		t.Fatal("Expected missing credentials to fail the run")
	}
}

func TestLedgerCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flickrResults.csv")
	w, err := ledger.CreateCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Write(ledger.Row{FlickrID: "101", Title: "Taonga", Tags: "natural-sciences"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "ledger", path)
	if err != nil {
		t.Fatalf("ledger returned error: %v", err)
	}
	if !strings.Contains(out, "Taonga") || !strings.Contains(out, "1 photos in") {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := executeCommand(t, "lookup", "1", "--config", "nope.toml"); err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if _, err := os.Stat("flickrUpload.log"); err == nil {
		t.Error("Expected no log file to be created")
	}
}
