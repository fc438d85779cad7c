package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/cards"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type cardCreateRequest struct {
	Name          string          `json:"name" validate:"required"`
	BankAccountID *uuid.UUID      `json:"bankAccountId,omitempty"`
	MaskedNo      *string         `json:"maskedNo,omitempty"`
	CardLimit     decimal.Decimal `json:"cardLimit"`
	CutoffDay     int             `json:"cutoffDay" validate:"required,min=1,max=31"`
	DueDay        int             `json:"dueDay" validate:"required,min=1,max=31"`
}

// CardCreate registers a company credit card.
func CardCreate(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cardCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), cards.CreateInput{
			Name:          payload.Name,
			BankAccountID: payload.BankAccountID,
			MaskedNo:      payload.MaskedNo,
			CardLimit:     payload.CardLimit,
			CutoffDay:     payload.CutoffDay,
			DueDay:        payload.DueDay,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, card)
	}
}

// CardList lists cards, optionally only active ones.
func CardList(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly, err := validators.ParseQueryBool(r, "activeOnly")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CardDetail returns one card.
func CardDetail(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "cardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

type cardUpdateRequest struct {
	Name      *string          `json:"name,omitempty"`
	MaskedNo  *string          `json:"maskedNo,omitempty"`
	CardLimit *decimal.Decimal `json:"cardLimit,omitempty"`
	CutoffDay *int             `json:"cutoffDay,omitempty" validate:"omitempty,min=1,max=31"`
	DueDay    *int             `json:"dueDay,omitempty" validate:"omitempty,min=1,max=31"`
	Active    *bool            `json:"active,omitempty"`
}

// CardUpdate edits card fields.
func CardUpdate(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "cardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload cardUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		card, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, cards.UpdateInput{
			Name:      payload.Name,
			MaskedNo:  payload.MaskedNo,
			CardLimit: payload.CardLimit,
			CutoffDay: payload.CutoffDay,
			DueDay:    payload.DueDay,
			Active:    payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, card)
	}
}

// CardDelete soft-deletes a card.
func CardDelete(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "cardId"))
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

// CardStatement reports the card's current statement cycle. reference
// overrides today for the cycle math.
func CardStatement(svc cards.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "cardId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reference, err := validators.ParseQueryDate(r, "reference")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.StatementSummary(r.Context(), id, reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
