package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-user-service/internal/logger"
)

const (
	avatarField     = "avatar"
	coverImageField = "coverImage"

	// uploadFilePrefix marks request temp files; the upload janitor only
	// removes files carrying it.
	uploadFilePrefix = "upload-"
)

// isMultipart reports whether r carries a multipart/form-data body.
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart parses the multipart body of r keeping at most MaxMemory
// bytes in memory.
func (h *Handler) parseMultipart(r *http.Request) error {
	maxMemory := h.uploads.MaxMemory
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	return r.ParseMultipartForm(maxMemory)
}

// saveFormFile copies the first file of field into the upload temp directory
// and returns its path. A missing file yields "" and no error.
func (h *Handler) saveFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading form file %q: %w", field, err)
	}
	defer file.Close()

	dst, err := os.CreateTemp(h.uploads.TempDir, uploadFilePrefix+"*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("error creating temp file: %w", err)
	}

	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("error saving form file %q: %w", field, err)
	}
	if err = dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("error closing temp file: %w", err)
	}

	return dst.Name(), nil
}

// cleanupUploads removes the request temp files and the multipart form
// spill files.
func cleanupUploads(r *http.Request, paths ...string) {
	log := logger.FromRequest(r)

	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", p).Msg("error removing upload temp file")
		}
	}

	if r.MultipartForm != nil {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("error removing multipart form files")
		}
	}
}
