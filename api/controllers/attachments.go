package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/attachments"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

// multipart form memory threshold; larger parts spill to temp files.
const uploadMemoryLimit = 4 << 20

// AttachmentUpload accepts a multipart upload under the "file" field.
func AttachmentUpload(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field required"))
			return
		}
		defer file.Close()

		attachment, err := svc.Upload(r.Context(), middleware.ActorFromContext(r.Context()), attachments.UploadInput{
			FileName: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Body:     file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, attachment)
	}
}

// AttachmentDownload streams the stored file body.
func AttachmentDownload(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "attachmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attachment, body, err := svc.Open(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", attachment.MimeType)
		w.Header().Set("Content-Length", strconv.FormatInt(attachment.SizeBytes, 10))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
		if _, err := io.Copy(w, body); err != nil {
			logg.Error(r.Context(), "attachment.stream_failed", err)
		}
	}
}

// AttachmentDelete removes the record and its file.
func AttachmentDelete(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "attachmentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.ActorFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
