package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/posterminals"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type posTerminalCreateRequest struct {
	Name          string           `json:"name" validate:"required"`
	BankAccountID *uuid.UUID       `json:"bankAccountId,omitempty"`
	DefaultRate   *decimal.Decimal `json:"defaultRate,omitempty"`
}

// PosTerminalCreate registers a POS terminal.
func PosTerminalCreate(svc posterminals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload posTerminalCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		terminal, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), posterminals.CreateInput{
			Name:          payload.Name,
			BankAccountID: payload.BankAccountID,
			DefaultRate:   payload.DefaultRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, terminal)
	}
}

// PosTerminalList lists terminals, optionally only active ones.
func PosTerminalList(svc posterminals.Service, logg *logger.Logger) http.HandlerFunc {
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

// PosTerminalDetail returns one terminal.
func PosTerminalDetail(svc posterminals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "terminalId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		terminal, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, terminal)
	}
}

type posTerminalUpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	DefaultRate *decimal.Decimal `json:"defaultRate,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// PosTerminalUpdate edits terminal fields.
func PosTerminalUpdate(svc posterminals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "terminalId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload posTerminalUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		terminal, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, posterminals.UpdateInput{
			Name:        payload.Name,
			DefaultRate: payload.DefaultRate,
			Active:      payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, terminal)
	}
}

// PosTerminalDelete soft-deletes a terminal.
func PosTerminalDelete(svc posterminals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "terminalId"))
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
