package manual

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
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

const (
	cacheEnvVar        = "FC100V_CACHE_DIR"
	cacheSubdir        = "fc100v/manuals"
	cacheTTL           = 7 * 24 * time.Hour
	partialSuffix      = ".part"
	metaSuffix         = ".meta"
	defaultHTTPTimeout = 90 * time.Second
)

// Cache stores downloaded manuals keyed by URL.
type Cache struct {
	dir    string
	client *http.Client
	now    func() time.Time
}

type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

// NewCache creates dir (or the default cache directory when empty).
func NewCache(dir string, client *http.Client) (*Cache, error) {
	if dir == "" {
		dir = os.Getenv(cacheEnvVar)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "fc100v-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Cache{dir: dir, client: client, now: time.Now}, nil
}

// Fetch returns a local path for url, downloading when the cached copy is
// missing or older than the TTL. A stale copy is served if the refresh fails.
func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	filePath, metaPath := c.pathsFor(cacheKey(url), cacheExt(url))

	info, statErr := os.Stat(filePath)
	if statErr == nil && info.Size() > 0 && c.now().Sub(info.ModTime()) < cacheTTL {
		return filePath, nil
	}

	meta, _ := readMeta(metaPath)
	err := c.download(ctx, url, filePath, metaPath, meta, statErr == nil && info.Size() > 0)
	if err == nil {
		return filePath, nil
	}
	if statErr == nil && info.Size() > 0 {
		return filePath, nil
	}
	return "", err
}

func (c *Cache) download(ctx context.Context, url, filePath, metaPath string, meta cacheMeta, haveCopy bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if haveCopy {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		if !haveCopy {
			return fmt.Errorf("manual download: unexpected 304 without a cached copy")
		}
		now := c.now()
		meta.CachedAt = now.UTC()
		_ = os.Chtimes(filePath, now, now)
		return writeMeta(metaPath, meta)
	case http.StatusOK:
		return c.saveBody(resp, filePath, metaPath)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("manual download failed: %s (%s)", resp.Status, string(body))
	}
}

func (c *Cache) saveBody(resp *http.Response, filePath, metaPath string) error {
	partialPath := filePath + partialSuffix
	file, err := os.OpenFile(partialPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(partialPath)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Rename(partialPath, filePath); err != nil {
		return err
	}

	meta := cacheMeta{
		URL:          resp.Request.URL.String(),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		CachedAt:     c.now().UTC(),
	}
	if info, err := os.Stat(filePath); err == nil {
		meta.Size = info.Size()
	}
	return writeMeta(metaPath, meta)
}

func (c *Cache) pathsFor(key, ext string) (string, string) {
	return filepath.Join(c.dir, key+ext), filepath.Join(c.dir, key+metaSuffix)
}

// cacheExt picks the extension LoadFile dispatches on: text manuals keep
// theirs, everything else is stored as .pdf.
func cacheExt(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ".pdf"
	}
	switch ext := strings.ToLower(path.Ext(parsed.Path)); ext {
	case ".txt", ".md", ".text":
		return ext
	}
	return ".pdf"
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

func readMeta(path string) (cacheMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheMeta{}, err
	}
	var meta cacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta cacheMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
