package server

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// DefaultImage is served when a requested image does not exist.
const DefaultImage = "default.jpg"

// ImageDir stores uploaded images under content-addressed names.
type ImageDir struct {
	dir string
}

// NewImageDir creates dir if needed.
func NewImageDir(dir string) (*ImageDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &ImageDir{dir: dir}, nil
}

// Save writes data as <sha256>.jpg and returns that name.
func (d *ImageDir) Save(data []byte) (string, error) {
	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:]) + ".jpg"
	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Path resolves name inside the directory, falling back to DefaultImage.
// The second result is false when name was not found.
func (d *ImageDir) Path(name string) (string, bool) {
	p := filepath.Join(d.dir, filepath.Base(name))
	if _, err := os.Stat(p); err != nil {
		return filepath.Join(d.dir, DefaultImage), false
	}
	return p, true
}

// handleGetImage serves /image/{image_name}. Only .jpg names are accepted.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "image_name")
	if !strings.HasSuffix(name, ".jpg") {
		respondError(w, http.StatusBadRequest, "Image path does not end with .jpg")
		return
	}
	p, found := s.images.Path(name)
	if !found {
		log.Printf("image not found: %s", name)
	}
	if _, err := os.Stat(p); err != nil {
		respondError(w, http.StatusNotFound, "Image not found")
		return
	}
	http.ServeFile(w, r, p)
}
