package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/banks"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type bankCreateRequest struct {
	Name      string  `json:"name" validate:"required"`
	AccountNo *string `json:"accountNo,omitempty"`
	IBAN      *string `json:"iban,omitempty"`
}

// BankCreate registers a bank account.
func BankCreate(svc banks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bankCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), banks.CreateInput{
			Name:      payload.Name,
			AccountNo: payload.AccountNo,
			IBAN:      payload.IBAN,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// BankList lists bank accounts.
func BankList(svc banks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// BankDetail returns one bank account.
func BankDetail(svc banks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "bankId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

type bankUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	AccountNo *string `json:"accountNo,omitempty"`
	IBAN      *string `json:"iban,omitempty"`
}

// BankUpdate edits bank account fields.
func BankUpdate(svc banks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "bankId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload bankUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, banks.UpdateInput{
			Name:      payload.Name,
			AccountNo: payload.AccountNo,
			IBAN:      payload.IBAN,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

// BankDelete soft-deletes a bank account.
func BankDelete(svc banks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "bankId"))
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
