// Package upload validates image uploads and hands them to a storage backend.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoFile   = errors.New("no file uploaded")
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file too large")
)

// AllowedTypes are the declared content types accepted for upload.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

// sniffTypes are the detected content types accepted for upload.
var sniffTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Storage persists an uploaded object and returns the URL it is served from.
type Storage interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// Result is what a successful upload reports back to the client.
type Result struct {
	URL      string
	Filename string
}

// Uploader checks files before anything reaches storage.
type Uploader struct {
	storage Storage
	maxSize int64
	now     func() time.Time
}

func NewUploader(storage Storage, maxSize int64) *Uploader {
	return &Uploader{storage: storage, maxSize: maxSize, now: time.Now}
}

// MaxSize is the largest accepted file in bytes.
func (u *Uploader) MaxSize() int64 { return u.maxSize }

// Upload validates the file and stores it under a generated name.
func (u *Uploader) Upload(ctx context.Context, header *multipart.FileHeader) (*Result, error) {
	if header == nil {
		return nil, ErrNoFile
	}
	if header.Size > u.maxSize {
		return nil, ErrTooLarge
	}
	if !allowedDeclared(header.Header.Get("Content-Type")) {
		return nil, ErrNotImage
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, u.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > u.maxSize {
		return nil, ErrTooLarge
	}

	detected := mimetype.Detect(data)
	if !isSniffedImage(detected) {
		return nil, ErrNotImage
	}

	name := u.filename(header.Filename, detected.Extension())
	url, err := u.storage.Save(ctx, name, detected.String(), bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &Result{URL: url, Filename: name}, nil
}

func allowedDeclared(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, t := range AllowedTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

func isSniffedImage(m *mimetype.MIME) bool {
	for _, t := range sniffTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// filename builds logo-<unixmillis>-<random><ext>. The extension of the
// original name is kept; the detected one is used when it has none.
func (u *Uploader) filename(original, detectedExt string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		ext = detectedExt
	}
	return fmt.Sprintf("logo-%d-%d%s", u.now().UnixMilli(), rand.Int64N(1e9), ext)
}
