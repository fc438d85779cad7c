package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/ledger"
	"github.com/escafood/kasadefteri-backend/pkg/enums"
	pkgerrors "github.com/escafood/kasadefteri-backend/pkg/errors"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type cashEntryRequest struct {
	IsoDate      string          `json:"isoDate" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Description  *string         `json:"description,omitempty"`
	Counterparty *string         `json:"counterparty,omitempty"`
	Category     *string         `json:"category,omitempty"`
	CustomerID   *uuid.UUID      `json:"customerId,omitempty"`
	SupplierID   *uuid.UUID      `json:"supplierId,omitempty"`
	TagIDs       []uuid.UUID     `json:"tagIds,omitempty"`
}

func (r cashEntryRequest) toInput() (ledger.EntryInput, error) {
	input := ledger.EntryInput{
		IsoDate:      r.IsoDate,
		Amount:       r.Amount,
		Description:  r.Description,
		Counterparty: r.Counterparty,
		CustomerID:   r.CustomerID,
		SupplierID:   r.SupplierID,
		TagIDs:       r.TagIDs,
	}
	if r.Category != nil {
		category, err := enums.ParseTransactionCategory(*r.Category)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	return input, nil
}

// CashIn books a cash inflow.
func CashIn(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cashEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.CashIn(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// CashOut books a cash outflow.
func CashOut(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cashEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.CashOut(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

type bankEntryRequest struct {
	cashEntryRequest
	BankAccountID uuid.UUID `json:"bankAccountId" validate:"required"`
}

func (r bankEntryRequest) toInput() (ledger.BankEntryInput, error) {
	base, err := r.cashEntryRequest.toInput()
	if err != nil {
		return ledger.BankEntryInput{}, err
	}
	return ledger.BankEntryInput{EntryInput: base, BankAccountID: r.BankAccountID}, nil
}

// BankIn books a bank inflow.
func BankIn(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bankEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.BankIn(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// BankOut books a bank outflow.
func BankOut(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bankEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.BankOut(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

type posCollectionRequest struct {
	IsoDate       string          `json:"isoDate" validate:"required"`
	BankAccountID uuid.UUID       `json:"bankAccountId" validate:"required"`
	TerminalID    *uuid.UUID      `json:"terminalId,omitempty"`
	Brut          decimal.Decimal `json:"brut" validate:"required"`
	Komisyon      decimal.Decimal `json:"komisyon"`
	Description   *string         `json:"description,omitempty"`
	CustomerID    *uuid.UUID      `json:"customerId,omitempty"`
	TagIDs        []uuid.UUID     `json:"tagIds,omitempty"`
}

// PosCollection books one terminal settlement as its net and commission
// pair.
func PosCollection(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload posCollectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PosCollection(r.Context(), middleware.ActorFromContext(r.Context()), ledger.PosCollectionInput{
			IsoDate:       payload.IsoDate,
			BankAccountID: payload.BankAccountID,
			TerminalID:    payload.TerminalID,
			Brut:          payload.Brut,
			Komisyon:      payload.Komisyon,
			Description:   payload.Description,
			CustomerID:    payload.CustomerID,
			TagIDs:        payload.TagIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type cardExpenseRequest struct {
	IsoDate     string          `json:"isoDate" validate:"required"`
	CardID      uuid.UUID       `json:"cardId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description *string         `json:"description,omitempty"`
	SupplierID  *uuid.UUID      `json:"supplierId,omitempty"`
	TagIDs      []uuid.UUID     `json:"tagIds,omitempty"`
}

// CardExpense books a credit-card purchase and raises the card's risk.
func CardExpense(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cardExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := enums.ParseTransactionCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		entry, err := svc.CardExpense(r.Context(), middleware.ActorFromContext(r.Context()), ledger.CardExpenseInput{
			IsoDate:     payload.IsoDate,
			CardID:      payload.CardID,
			Amount:      payload.Amount,
			Category:    category,
			Description: payload.Description,
			SupplierID:  payload.SupplierID,
			TagIDs:      payload.TagIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

type cardPaymentRequest struct {
	IsoDate       string          `json:"isoDate" validate:"required"`
	CardID        uuid.UUID       `json:"cardId" validate:"required"`
	BankAccountID *uuid.UUID      `json:"bankAccountId,omitempty"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Description   *string         `json:"description,omitempty"`
	TagIDs        []uuid.UUID     `json:"tagIds,omitempty"`
}

// CardPayment books a payment against a card's outstanding risk.
func CardPayment(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cardPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.CardPayment(r.Context(), middleware.ActorFromContext(r.Context()), ledger.CardPaymentInput{
			IsoDate:       payload.IsoDate,
			CardID:        payload.CardID,
			BankAccountID: payload.BankAccountID,
			Amount:        payload.Amount,
			Description:   payload.Description,
			TagIDs:        payload.TagIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// TransactionDetail returns one ledger entry.
func TransactionDetail(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "transactionId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// TransactionDelete soft-deletes a ledger entry.
func TransactionDelete(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "transactionId"))
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

// DailyLedger reports entries and running totals for a date range.
func DailyLedger(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ledger.RangeInput{FromDate: from, ToDate: to}
		if raw := r.URL.Query().Get("source"); raw != "" {
			source, err := enums.ParseTransactionSource(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source"))
				return
			}
			input.Source = source
		}

		result, err := svc.DailyLedger(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
