package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/escafood/kasadefteri-backend/api/middleware"
	"github.com/escafood/kasadefteri-backend/api/responses"
	"github.com/escafood/kasadefteri-backend/api/validators"
	"github.com/escafood/kasadefteri-backend/internal/customers"
	"github.com/escafood/kasadefteri-backend/pkg/logger"
)

type customerRequest struct {
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone,omitempty"`
	TaxNo *string `json:"taxNo,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// CustomerCreate registers a customer.
func CustomerCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), customers.CreateInput{
			Name:  payload.Name,
			Phone: payload.Phone,
			TaxNo: payload.TaxNo,
			Note:  payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

type customerSaveItem struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name"`
	Phone *string    `json:"phone,omitempty"`
	TaxNo *string    `json:"taxNo,omitempty"`
	Note  *string    `json:"note,omitempty"`
}

type customerBulkRequest struct {
	Items []customerSaveItem `json:"items" validate:"required,min=1"`
}

// CustomerBulkSave upserts a batch of customers in one call.
func CustomerBulkSave(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload customerBulkRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]customers.SaveItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, customers.SaveItem{
				ID:    item.ID,
				Name:  item.Name,
				Phone: item.Phone,
				TaxNo: item.TaxNo,
				Note:  item.Note,
			})
		}

		saved, err := svc.BulkSave(r.Context(), middleware.ActorFromContext(r.Context()), items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

// CustomerList lists customers, filtered by a search term when given.
func CustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// CustomerDetail returns one customer.
func CustomerDetail(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

type customerUpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	TaxNo *string `json:"taxNo,omitempty"`
	Note  *string `json:"note,omitempty"`
}

// CustomerUpdate edits customer fields.
func CustomerUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload customerUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, customers.UpdateInput{
			Name:  payload.Name,
			Phone: payload.Phone,
			TaxNo: payload.TaxNo,
			Note:  payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, customer)
	}
}

// CustomerDelete soft-deletes a customer.
func CustomerDelete(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "customerId"))
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
