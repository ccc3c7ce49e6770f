package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshstockhq/freshstock-backend/api/responses"
	"github.com/freshstockhq/freshstock-backend/api/validators"
	"github.com/freshstockhq/freshstock-backend/internal/items"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
)

type createItemRequest struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	ExpiryDate string  `json:"expiryDate" validate:"required"`
	Category   string  `json:"category" validate:"required"`
}

type updateItemRequest struct {
	Name       *string  `json:"name" validate:"omitempty"`
	Price      *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity   *int     `json:"quantity" validate:"omitempty,gt=0"`
	ExpiryDate *string  `json:"expiryDate" validate:"omitempty"`
	Category   *string  `json:"category" validate:"omitempty"`
}

func CreateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), items.CreateItemInput{
			Name:       req.Name,
			Price:      req.Price,
			Quantity:   req.Quantity,
			ExpiryDate: req.ExpiryDate,
			Category:   req.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func UpdateItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), id, items.UpdateItemInput{
			Name:       req.Name,
			Price:      req.Price,
			Quantity:   req.Quantity,
			ExpiryDate: req.ExpiryDate,
			Category:   req.Category,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func DeleteItem(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ListItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func SearchItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SearchByName(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func itemIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "itemId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id").
			WithDetails(map[string]any{"itemId": "must be a UUID"})
	}
	return id, nil
}
