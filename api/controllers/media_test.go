package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sukalov/shitsu/internal/media"
	"github.com/sukalov/shitsu/pkg/db/models"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

type stubMediaService struct {
	uploads  []string
	failName string
	blob     string
	row      *models.Media
}

func (s *stubMediaService) Upload(ctx context.Context, fileName string, r io.Reader) (*media.UploadDTO, error) {
	if fileName == s.failName {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only images are accepted")
	}
	s.uploads = append(s.uploads, fileName)
	return &media.UploadDTO{StorageID: "id-" + fileName, FileName: fileName}, nil
}

func (s *stubMediaService) Open(ctx context.Context, storageID string) (io.ReadCloser, *models.Media, error) {
	if s.row == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	return io.NopCloser(strings.NewReader(s.blob)), s.row, nil
}

func (s *stubMediaService) Delete(ctx context.Context, storageID string) error {
	panic("unimplemented")
}

func (s *stubMediaService) ResolveURLs(ctx context.Context, refs []string) ([]string, error) {
	panic("unimplemented")
}

func multipartBody(t *testing.T, names []string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := part.Write([]byte("payload")); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestAdminUploadMediaPerFileOutcomes(t *testing.T) {
	logg := testLogger()
	stub := &stubMediaService{failName: "notes.txt"}

	body, contentType := multipartBody(t, []string{"one.png", "notes.txt", "two.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/media", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	AdminUploadMedia(stub, logg, 20).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.uploads) != 2 {
		t.Fatalf("expected the two good files to upload, got %v", stub.uploads)
	}
	if !strings.Contains(rec.Body.String(), "only images are accepted") {
		t.Fatalf("expected the bad file's error in the batch response")
	}
}

func TestAdminUploadMediaNoFiles(t *testing.T) {
	logg := testLogger()

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/media", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	AdminUploadMedia(&stubMediaService{}, logg, 20).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without files, got %d", rec.Code)
	}
}

func TestGetImage(t *testing.T) {
	logg := testLogger()

	t.Run("streams blob", func(t *testing.T) {
		stub := &stubMediaService{
			blob: "picture bytes",
			row:  &models.Media{ContentType: "image/png", SizeBytes: int64(len("picture bytes"))},
		}
		req := httptest.NewRequest(http.MethodGet, "/getImage?storageId=some-id", nil)
		rec := httptest.NewRecorder()
		GetImage(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Type") != "image/png" {
			t.Fatalf("expected image content type, got %q", rec.Header().Get("Content-Type"))
		}
		if rec.Body.String() != "picture bytes" {
			t.Fatalf("expected blob body, got %q", rec.Body.String())
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/getImage?storageId=missing", nil)
		rec := httptest.NewRecorder()
		GetImage(&stubMediaService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
		}
	})

	t.Run("missing param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/getImage", nil)
		rec := httptest.NewRecorder()
		GetImage(&stubMediaService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 without storageId, got %d", rec.Code)
		}
	})
}
