package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sukalov/shitsu/api/responses"
	"github.com/sukalov/shitsu/internal/media"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
	"github.com/sukalov/shitsu/pkg/logger"
)

// AdminUploadMedia accepts a multipart batch of images. Files succeed
// or fail one by one; a bad file never sinks the rest of the batch.
func AdminUploadMedia(svc media.Service, logg *logger.Logger, maxUploadMB int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxMemory := int64(maxUploadMB) * 1024 * 1024
		if maxMemory <= 0 {
			maxMemory = 20 * 1024 * 1024
		}

		if err := r.ParseMultipartForm(maxMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no files provided"))
			return
		}

		outcomes := make([]media.UploadOutcome, 0, len(files))
		for _, header := range files {
			outcome := media.UploadOutcome{FileName: header.Filename}

			file, err := header.Open()
			if err != nil {
				outcome.Error = "could not read file"
				outcomes = append(outcomes, outcome)
				continue
			}

			uploaded, err := svc.Upload(r.Context(), header.Filename, file)
			file.Close()
			if err != nil {
				if typed := pkgerrors.As(err); typed != nil {
					outcome.Error = typed.Message()
				} else {
					outcome.Error = "upload failed"
				}
				outcomes = append(outcomes, outcome)
				continue
			}

			outcome.Uploaded = uploaded
			outcomes = append(outcomes, outcome)
		}

		responses.WriteSuccess(w, outcomes)
	}
}

// GetImage streams a stored blob to the public storefront.
func GetImage(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storageID := strings.TrimSpace(r.URL.Query().Get("storageId"))
		if storageID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "storageId required"))
			return
		}

		blob, row, err := svc.Open(r.Context(), storageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer blob.Close()

		w.Header().Set("Content-Type", row.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(row.SizeBytes, 10))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if _, err := io.Copy(w, blob); err != nil {
			logg.Error(r.Context(), "media.stream.failed", err)
		}
	}
}

// AdminDeleteMedia removes a stored image.
func AdminDeleteMedia(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storageID := strings.TrimSpace(chi.URLParam(r, "storageID"))
		if storageID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "storage id required"))
			return
		}

		if err := svc.Delete(r.Context(), storageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
