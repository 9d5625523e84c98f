package controllers

import (
	"fmt"
	"net/http"

	"github.com/candyland-dev/candyland-backend/api/responses"
	filestore "github.com/candyland-dev/candyland-backend/internal/files"
	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
	"github.com/candyland-dev/candyland-backend/pkg/logger"
)

// multipart parse ceiling, kept above the per-file limit so the store's own
// size check is the one that fires.
const multipartMemoryLimit = 64 << 20

// UploadFile stores one image from a multipart form under the field "file".
func UploadFile(store *filestore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeValidation, "multipart field 'file' is required"))
			return
		}
		defer file.Close()

		stored, err := store.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, r, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}

// UploadFiles stores up to the configured batch of images from the repeated
// multipart field "files".
func UploadFiles(store *filestore.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeValidation, "multipart field 'files' is required"))
			return
		}

		headers := r.MultipartForm.File["files"]
		if len(headers) > store.MaxPerBatch() {
			responses.WriteError(r.Context(), logg, w, r,
				pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("at most %d files per upload", store.MaxPerBatch())))
			return
		}

		stored := make([]*filestore.StoredFile, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, r,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable upload"))
				return
			}

			result, err := store.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
			file.Close()
			if err != nil {
				// Drop what this batch already wrote so a failed batch leaves
				// nothing behind.
				for _, s := range stored {
					_ = store.Remove(s.FileName)
				}
				responses.WriteError(r.Context(), logg, w, r, err)
				return
			}
			stored = append(stored, result)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, stored)
	}
}
