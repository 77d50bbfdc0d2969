package wkhtmltox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCheckReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/good.deb" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloader(10 * time.Second)

	if err := d.CheckReachable(context.Background(), server.URL+"/good.deb"); err != nil {
		t.Errorf("CheckReachable() on existing resource error = %v", err)
	}

	err := d.CheckReachable(context.Background(), server.URL+"/missing.deb")
	if err == nil {
		t.Fatal("CheckReachable() should fail on 404")
	}
	// The error must include the attempted URL
	if want := server.URL + "/missing.deb"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should name the URL %q", err, want)
	}
}

func TestDownloadArtifact(t *testing.T) {
	payload := []byte("fake deb content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "wkhtmltox.deb")
	d := NewDownloader(10 * time.Second)

	if err := d.DownloadArtifact(context.Background(), server.URL+"/pkg.deb", dest); err != nil {
		t.Fatalf("DownloadArtifact() error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("artifact content = %q, want %q", data, payload)
	}
}

func TestDownloadArtifact_FailureLeavesNoArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "wkhtmltox.deb")
	d := NewDownloader(10 * time.Second)

	if err := d.DownloadArtifact(context.Background(), server.URL+"/pkg.deb", dest); err == nil {
		t.Fatal("DownloadArtifact() should fail on server error")
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("failed download left an artifact behind")
	}

	// The temp download file must be cleaned up too
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}
}
