package covers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoCover means the game has no cover URL to download.
var ErrNoCover = errors.New("no cover url")

// Downloader fetches cover images into a local directory, one file per
// game, skipping files that already exist unless forced.
type Downloader struct {
	Client *http.Client
	Dir    string
}

func NewDownloader(dir string) *Downloader {
	return &Downloader{
		Client: &http.Client{Timeout: 30 * time.Second},
		Dir:    dir,
	}
}

// Download fetches coverURL and stores it under a filename derived from
// title and the game id. Returns the local path.
func (d *Downloader) Download(id int64, title, coverURL string, force bool) (string, error) {
	if coverURL == "" {
		return "", ErrNoCover
	}

	ext := coverExt(coverURL)
	name := fmt.Sprintf("%s-%d%s", sanitizeForFilename(title), id, ext)
	outPath := filepath.Join(d.Dir, name)

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return outPath, nil
		}
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", err
	}

	resp, err := d.Client.Get(coverURL)
	if err != nil {
		return "", fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("cover not found at %s", coverURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read cover: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", err
	}
	return outPath, nil
}

func coverExt(coverURL string) string {
	u, err := url.Parse(coverURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return ".jpg"
}

func sanitizeForFilename(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(name)
}
