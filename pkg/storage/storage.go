package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind selects the upload policy applied to a file
type Kind string

const (
	KindMerchantImage Kind = "merchants"
	KindPromoMedia    Kind = "promos"
)

var allowedExts = map[Kind]map[string]bool{
	KindMerchantImage: {".jpg": true, ".jpeg": true, ".png": true},
	KindPromoMedia:    {".jpg": true, ".jpeg": true, ".png": true, ".mp4": true, ".webm": true},
}

// Store decides where uploads land and what they are called. Paths returned
// are relative to the upload root so rows stay portable across hosts.
type Store struct {
	root    string
	baseURL string
}

// NewStore creates a new upload store
func NewStore(root, baseURL string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Allowed reports whether the file extension is accepted for the kind
func (s *Store) Allowed(kind Kind, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedExts[kind][ext]
}

// RelativePath builds the stored path for an upload, with a generated name
// so client-supplied names never reach the filesystem.
func (s *Store) RelativePath(kind Kind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("uploads", string(kind), fmt.Sprintf("%s%s", uuid.NewString(), ext))
}

// DiskPath resolves a relative upload path against the upload root
func (s *Store) DiskPath(relative string) string {
	return filepath.Join(s.root, filepath.FromSlash(relative))
}

// PublicURL resolves a stored relative path to an absolute URL
func (s *Store) PublicURL(relative string) string {
	if relative == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimLeft(relative, "/")
}
