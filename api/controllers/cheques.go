package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/cheques"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type chequeCreateRequest struct {
	CekNo         string          `json:"cekNo" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	EntryDate     string          `json:"entryDate" validate:"required"`
	MaturityDate  string          `json:"maturityDate" validate:"required"`
	Direction     string          `json:"direction" validate:"required"`
	CustomerID    *uuid.UUID      `json:"customerId,omitempty"`
	SupplierID    *uuid.UUID      `json:"supplierId,omitempty"`
	BankAccountID *uuid.UUID      `json:"bankAccountId,omitempty"`
	AttachmentID  *uuid.UUID      `json:"attachmentId,omitempty"`
	Description   *string         `json:"description,omitempty"`
}

func (r chequeCreateRequest) toInput() (cheques.CreateInput, error) {
	direction, err := enums.ParseChequeDirection(r.Direction)
	if err != nil {
		return cheques.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction")
	}
	return cheques.CreateInput{
		CekNo:         r.CekNo,
		Amount:        r.Amount,
		EntryDate:     r.EntryDate,
		MaturityDate:  r.MaturityDate,
		Direction:     direction,
		CustomerID:    r.CustomerID,
		SupplierID:    r.SupplierID,
		BankAccountID: r.BankAccountID,
		AttachmentID:  r.AttachmentID,
		Description:   r.Description,
	}, nil
}

// ChequeCreate registers a cheque in the portfolio.
func ChequeCreate(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload chequeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cheque, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cheque)
	}
}

// ChequeList returns the portfolio with maturity summary figures.
func ChequeList(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter cheques.ListFilter

		if raw := r.URL.Query().Get("direction"); raw != "" {
			direction, err := enums.ParseChequeDirection(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
				return
			}
			filter.Direction = direction
		}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseChequeStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filter.Status = status
		}
		maturityFrom, err := validators.ParseQueryDate(r, "maturityFrom")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maturityTo, err := validators.ParseQueryDate(r, "maturityTo")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.MaturityFrom = maturityFrom
		filter.MaturityTo = maturityTo
		if filter.CustomerID, err = validators.ParseQueryUUID(r, "customerId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.SupplierID, err = validators.ParseQueryUUID(r, "supplierId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Search = r.URL.Query().Get("search")

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ChequePayable lists payable cheques still awaiting settlement,
// optionally narrowed to one bank account.
func ChequePayable(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bankID, err := validators.ParseQueryUUID(r, "bankId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payables, err := svc.ListPayable(r.Context(), bankID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payables)
	}
}

// ChequeDetail returns one cheque with its move history.
func ChequeDetail(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "chequeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type chequeUpdateRequest struct {
	CekNo        *string          `json:"cekNo,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	EntryDate    *string          `json:"entryDate,omitempty"`
	MaturityDate *string          `json:"maturityDate,omitempty"`
	Description  *string          `json:"description,omitempty"`
	AttachmentID *uuid.UUID       `json:"attachmentId,omitempty"`
}

// ChequeUpdate edits cheque fields. Settled cheques keep their amount
// and dates frozen.
func ChequeUpdate(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "chequeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload chequeUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cheque, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, cheques.UpdateInput{
			CekNo:        payload.CekNo,
			Amount:       payload.Amount,
			EntryDate:    payload.EntryDate,
			MaturityDate: payload.MaturityDate,
			Description:  payload.Description,
			AttachmentID: payload.AttachmentID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cheque)
	}
}

type chequeStatusRequest struct {
	Status        string     `json:"status" validate:"required"`
	BankAccountID *uuid.UUID `json:"bankAccountId,omitempty"`
	SupplierID    *uuid.UUID `json:"supplierId,omitempty"`
	IsoDate       string     `json:"isoDate" validate:"required"`
	Description   *string    `json:"description,omitempty"`
}

// ChequeUpdateStatus moves a cheque through its lifecycle and books
// any ledger side effects the transition carries.
func ChequeUpdateStatus(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "chequeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload chequeStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseChequeStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		cheque, err := svc.UpdateStatus(r.Context(), middleware.ActorFromContext(r.Context()), id, cheques.StatusInput{
			Status:        status,
			BankAccountID: payload.BankAccountID,
			SupplierID:    payload.SupplierID,
			IsoDate:       payload.IsoDate,
			Description:   payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cheque)
	}
}

type chequePayRequest struct {
	BankAccountID uuid.UUID `json:"bankAccountId" validate:"required"`
	IsoDate       string    `json:"isoDate" validate:"required"`
	Description   *string   `json:"description,omitempty"`
}

// ChequePay settles a payable cheque from a bank account in one step.
func ChequePay(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "chequeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload chequePayRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cheque, err := svc.Pay(r.Context(), middleware.ActorFromContext(r.Context()), id, cheques.PayInput{
			BankAccountID: payload.BankAccountID,
			IsoDate:       payload.IsoDate,
			Description:   payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cheque)
	}
}

// ChequeDelete soft-deletes an unsettled cheque.
func ChequeDelete(svc cheques.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "chequeId"))
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
