package covers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestDownload(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("fake png bytes"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	d.Client = srv.Client()

	path, err := d.Download(7, "Chrono Trigger", srv.URL+"/covers/ct.png", false)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !strings.HasSuffix(path, "Chrono_Trigger-7.png") {
		t.Errorf("unexpected path: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "fake png bytes" {
		t.Errorf("file contents: %q, %v", data, err)
	}

	// Second call without force hits the local file, not the network.
	if _, err := d.Download(7, "Chrono Trigger", srv.URL+"/covers/ct.png", false); err != nil {
		t.Fatalf("cached download: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 fetch, got %d", hits)
	}

	if _, err := d.Download(7, "Chrono Trigger", srv.URL+"/covers/ct.png", true); err != nil {
		t.Fatalf("forced download: %v", err)
	}
	if hits != 2 {
		t.Errorf("expected forced refetch, got %d hits", hits)
	}
}

func TestDownloadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	d.Client = srv.Client()

	if _, err := d.Download(1, "X", "", false); !errors.Is(err, ErrNoCover) {
		t.Errorf("expected ErrNoCover, got %v", err)
	}
	if _, err := d.Download(1, "X", srv.URL+"/missing.jpg", false); err == nil {
		t.Error("expected error for 404 cover")
	}
}

func TestCoverExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://img.example/a.png", ".png"},
		{"https://img.example/a.JPEG", ".jpeg"},
		{"https://img.example/a.bmp", ".jpg"},
		{"https://img.example/noext", ".jpg"},
	}
	for _, tt := range tests {
		if got := coverExt(tt.in); got != tt.want {
			t.Errorf("coverExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
