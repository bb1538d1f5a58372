// Package storage uploads and deletes product images in an object bucket.
package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore is the product image bucket.
type BlobStore interface {
	// Upload stores the files under products/<slug>/ and returns their public URLs in order.
	Upload(ctx context.Context, slug string, files []*multipart.FileHeader) ([]string, error)
	// Delete removes the objects, attempting all of them; it returns the first error.
	Delete(ctx context.Context, objectNames []string) error
	// ObjectName extracts the object name from a public URL of this store.
	ObjectName(publicURL string) (string, error)
}

func productObjectName(slug, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s/%d%s", slug, time.Now().UnixNano(), ext)
}

func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// ObjectNames maps public URLs to object names, skipping URLs that do not
// belong to the store.
func ObjectNames(store BlobStore, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if name, err := store.ObjectName(u); err == nil {
			out = append(out, name)
		}
	}
	return out
}
