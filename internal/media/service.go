package media

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sukalov/shitsu/pkg/config"
	"github.com/sukalov/shitsu/pkg/db/models"
	pkgerrors "github.com/sukalov/shitsu/pkg/errors"
)

// Service stores uploaded images and serves them back by storage id.
type Service interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (*UploadDTO, error)
	Open(ctx context.Context, storageID string) (io.ReadCloser, *models.Media, error)
	Delete(ctx context.Context, storageID string) error
	ResolveURLs(ctx context.Context, refs []string) ([]string, error)
}

type blobStore interface {
	Save(name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
}

type service struct {
	repo    *Repository
	blobs   blobStore
	cfg     config.MediaConfig
	baseURL string
}

// NewService constructs the media service.
func NewService(repo *Repository, blobs blobStore, cfg config.MediaConfig, baseURL string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	return &service{
		repo:    repo,
		blobs:   blobs,
		cfg:     cfg,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload sniffs the payload, accepts images only, shrinks oversized
// ones to the configured bounds and persists blob plus DB row.
func (s *service) Upload(ctx context.Context, fileName string, r io.Reader) (*UploadDTO, error) {
	maxBytes := int64(s.cfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 20 * 1024 * 1024
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading upload")
	}
	if int64(len(data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file too large").
			WithDetails(map[string]string{"max_mb": fmt.Sprintf("%d", s.cfg.MaxUploadMB)})
	}
	if len(data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "empty file")
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only images are accepted").
			WithDetails(map[string]string{"content_type": detected.String()})
	}

	data, contentType := s.normalize(data, detected.String())

	id := uuid.New()
	written, err := s.blobs.Save(id.String(), bytes.NewReader(data))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing blob")
	}

	row := &models.Media{
		ID:          id,
		FileName:    strings.TrimSpace(fileName),
		ContentType: contentType,
		SizeBytes:   written,
		Path:        id.String(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		_ = s.blobs.Delete(id.String())
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving media row")
	}

	return &UploadDTO{
		StorageID:   id.String(),
		URL:         s.url(id.String()),
		FileName:    row.FileName,
		ContentType: row.ContentType,
		SizeBytes:   row.SizeBytes,
	}, nil
}

// normalize shrinks JPEG and PNG images that exceed the configured
// bounds. Other image formats pass through untouched.
func (s *service) normalize(data []byte, contentType string) ([]byte, string) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return data, contentType
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, contentType
	}

	maxW, maxH := s.cfg.ImageMaxWidth, s.cfg.ImageMaxHeight
	if maxW <= 0 {
		maxW = 1920
	}
	if maxH <= 0 {
		maxH = 1920
	}
	if cfg.Width <= maxW && cfg.Height <= maxH {
		return data, contentType
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, contentType
	}
	resized := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	quality := s.cfg.ImageQuality
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		err = imaging.Encode(&buf, resized, imaging.PNG)
	default:
		err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return data, contentType
	}
	return buf.Bytes(), contentType
}

// Open streams a stored blob back together with its media row.
func (s *service) Open(ctx context.Context, storageID string) (io.ReadCloser, *models.Media, error) {
	row, err := s.find(ctx, storageID)
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.blobs.Open(row.Path)
	if err != nil {
		if stdErrors.Is(err, os.ErrNotExist) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening blob")
	}
	return blob, row, nil
}

// Delete removes both the blob and the media row. Both deletions are
// attempted even if one fails.
func (s *service) Delete(ctx context.Context, storageID string) error {
	row, err := s.find(ctx, storageID)
	if err != nil {
		return err
	}

	var errs []error
	if err := s.blobs.Delete(row.Path); err != nil {
		errs = append(errs, fmt.Errorf("deleting blob: %w", err))
	}
	if err := s.repo.Delete(ctx, row.ID); err != nil {
		errs = append(errs, fmt.Errorf("deleting media row: %w", err))
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "deleting media")
	}
	return nil
}

// ResolveURLs maps image refs to servable URLs. Absolute http(s) refs
// pass through, known storage ids become /getImage links and unknown
// refs resolve to an empty string.
func (s *service) ResolveURLs(ctx context.Context, refs []string) ([]string, error) {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			urls = append(urls, ref)
			continue
		}

		id, err := uuid.Parse(ref)
		if err != nil {
			urls = append(urls, "")
			continue
		}
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				urls = append(urls, "")
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving image ref")
		}
		urls = append(urls, s.url(ref))
	}
	return urls, nil
}

func (s *service) find(ctx context.Context, storageID string) (*models.Media, error) {
	id, err := uuid.Parse(strings.TrimSpace(storageID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading media row")
	}
	return row, nil
}

func (s *service) url(storageID string) string {
	return fmt.Sprintf("%s/getImage?storageId=%s", s.baseURL, storageID)
}
