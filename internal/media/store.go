// Package media stores uploaded audio clips on local disk, keyed by an
// opaque filename. Blobs are written once when a question is submitted and
// removed when the question is deleted.
package media

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTooLarge     = errors.New("audio file exceeds the maximum upload size")
	ErrNotAudio     = errors.New("uploaded file is not audio")
	ErrBadFilename  = errors.New("invalid audio filename")
	ErrBlobNotFound = errors.New("audio file not found")
)

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Save writes the uploaded clip under a fresh uuid-based filename and
// returns that filename. Uploads over the size cap or without an audio
// content type are rejected before anything touches disk.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		return "", ErrNotAudio
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.New().String() + sanitizeExt(fh.Filename)
	dstPath := filepath.Join(s.dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer dst.Close()

	// The declared size is checked above, but the copy is still capped in
	// case the actual body is larger than the multipart header claims.
	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(dstPath)
		return "", ErrTooLarge
	}

	return filename, nil
}

// Path resolves a stored filename to its on-disk path. Filenames containing
// path separators or traversal segments are refused so a crafted reference
// cannot escape the upload directory.
func (s *Store) Path(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return "", ErrBadFilename
	}
	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrBlobNotFound
		}
		return "", fmt.Errorf("stat blob: %w", err)
	}
	return path, nil
}

// Delete removes the blob. A missing blob is not an error: the caller
// coordinates record and blob deletion best effort, so the blob may already
// be gone.
func (s *Store) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return ErrBadFilename
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// sanitizeExt keeps the original extension when it looks like a plain one,
// so players can sniff the container, and drops anything suspicious.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
