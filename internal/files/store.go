// Package files persists uploaded images on local disk and hands back
// the public URLs they are served under.
package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/candyland-dev/candyland-backend/pkg/config"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

// StoredFile describes one persisted upload.
type StoredFile struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	ContentType  string `json:"contentType"`
}

// Store writes uploads to a local directory. The directory is created on
// construction so a fresh deployment works without manual setup.
type Store struct {
	dir         string
	baseURL     string
	maxBytes    int64
	maxPerBatch int
	logg        *logger.Logger
}

// NewStore builds a disk-backed store from the uploads configuration.
func NewStore(app config.AppConfig, cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads dir required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	maxMB := cfg.MaxSizeMB
	if maxMB <= 0 {
		maxMB = 5
	}
	maxPerBatch := cfg.MaxPerBatch
	if maxPerBatch <= 0 {
		maxPerBatch = 10
	}

	return &Store{
		dir:         cfg.Dir,
		baseURL:     strings.TrimRight(app.BaseURL, "/"),
		maxBytes:    int64(maxMB) << 20,
		maxPerBatch: maxPerBatch,
		logg:        logg,
	}, nil
}

// Dir returns the directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// MaxPerBatch is the cap on files accepted in a single multi-upload request.
func (s *Store) MaxPerBatch() int {
	return s.maxPerBatch
}

// Save validates and persists one upload, returning its public descriptor.
// Only image content types are accepted and the declared size must fit the
// configured ceiling.
func (s *Store) Save(ctx context.Context, originalName, contentType string, size int64, r io.Reader) (*StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only image uploads are accepted").
			WithDetails(map[string]string{"contentType": contentType})
	}
	if size > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes>>20))
	}

	fileName := uuid.NewString() + extensionFor(originalName, contentType)
	dest := filepath.Join(s.dir, fileName)

	out, err := os.Create(dest)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create upload file")
	}

	// LimitReader guards against clients that lie about Content-Length.
	written, err := io.Copy(out, io.LimitReader(r, s.maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload file")
	}
	if written > s.maxBytes {
		_ = os.Remove(dest)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d MB limit", s.maxBytes>>20))
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"file":  fileName,
			"bytes": written,
		}), "upload.stored")
	}

	return &StoredFile{
		FileName:     fileName,
		OriginalName: originalName,
		URL:          fmt.Sprintf("%s/uploads/%s", s.baseURL, fileName),
		Size:         written,
		ContentType:  contentType,
	}, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (s *Store) Remove(fileName string) error {
	clean := filepath.Base(fileName)
	err := os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func extensionFor(originalName, contentType string) string {
	if ext := filepath.Ext(originalName); ext != "" && len(ext) <= 5 {
		return strings.ToLower(ext)
	}
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
