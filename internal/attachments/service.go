package attachments

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escafood/kasadefteri-backend/pkg/config"
	"github.com/escafood/kasadefteri-backend/pkg/db/models"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
)

// Service stores and serves uploaded documents.
type Service interface {
	Upload(ctx context.Context, actor string, input UploadInput) (*models.Attachment, error)
	Open(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error)
	Delete(ctx context.Context, actor string, id uuid.UUID) error
}

// UploadInput carries one incoming file.
type UploadInput struct {
	FileName string
	MimeType string
	Body     io.Reader
}

type service struct {
	repo     Repository
	store    *Store
	maxBytes int64
}

// NewService wires the attachment service. cfg bounds the accepted
// upload size.
func NewService(repo Repository, store *Store, cfg config.AttachmentsConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attachment repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("attachment store required")
	}
	return &service{
		repo:     repo,
		store:    store,
		maxBytes: int64(cfg.MaxUploadMB) << 20,
	}, nil
}

func (s *service) Upload(ctx context.Context, actor string, input UploadInput) (*models.Attachment, error) {
	if actor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}
	if input.FileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name required")
	}
	if input.Body == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file body required")
	}

	// One byte past the cap distinguishes an oversized upload from one
	// that lands exactly on the limit.
	limited := io.LimitReader(input.Body, s.maxBytes+1)
	storedName, written, err := s.store.Save(input.FileName, limited)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing attachment")
	}
	if written > s.maxBytes {
		s.store.Remove(storedName)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds upload size limit").
			WithDetails(map[string]any{"max_bytes": s.maxBytes})
	}

	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	attachment := &models.Attachment{
		FileName:   input.FileName,
		StoredName: storedName,
		MimeType:   mimeType,
		SizeBytes:  written,
		CreatedBy:  actor,
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		s.store.Remove(storedName)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving attachment record")
	}
	return attachment, nil
}

func (s *service) Open(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundOr(err)
	}
	body, err := s.store.Open(attachment.StoredName)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "opening attachment body")
	}
	return attachment, body, nil
}

func (s *service) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor required")
	}

	attachment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err)
	}
	if err := s.repo.Delete(ctx, attachment.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting attachment record")
	}
	return s.store.Remove(attachment.StoredName)
}

func notFoundOr(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "attachment not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading attachment")
}
