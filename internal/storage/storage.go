package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"staffhub.org/internal/ids"
)

var (
	ErrTooLarge    = errors.New("storage: file exceeds size limit")
	ErrNotAnImage  = errors.New("storage: file is not an image")
	ErrEmptyUpload = errors.New("storage: empty upload")
)

// MaxImageBytes caps uploaded holiday images.
const MaxImageBytes = 5 << 20

// Images writes uploaded images to a local directory and serves them
// back under baseURL.
type Images struct {
	dir     string
	baseURL string
}

func NewImages(dir, baseURL string) (*Images, error) {
	if dir == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Images{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save sniffs the content type, enforces the size limit and writes the
// image under a generated name. It returns the public URL.
func (s *Images) Save(r io.Reader, filename string) (string, error) {
	limited := io.LimitReader(r, MaxImageBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if len(data) > MaxImageBytes {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", ErrNotAnImage
	}

	name := ids.New() + safeExt(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Handler serves the stored images.
func (s *Images) Handler() http.Handler {
	return http.FileServer(http.Dir(s.dir))
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	}
	return ""
}
