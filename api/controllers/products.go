package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jordanvasquez/threadline-backend/api/responses"
	"github.com/jordanvasquez/threadline-backend/api/validators"
	"github.com/jordanvasquez/threadline-backend/internal/catalog"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
	"github.com/jordanvasquez/threadline-backend/pkg/pagination"
)

// SearchProducts filters the active catalog. All filters are optional and
// combine conjunctively.
func SearchProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseSearchFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, convErr := strconv.Atoi(raw)
			if convErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "limit must be an integer"))
				return
			}
			params.Limit = limit
		}

		page, err := svc.Search(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func GetProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetProductDetail(r.Context(), publicID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type stockMutationRequest struct {
	SkuID    int64 `json:"skuId" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,gt=0"`
}

// RecordStockMutation decrements variant inventory. Failures leave the
// product row untouched.
func RecordStockMutation(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req stockMutationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.RecordStockMutation(r.Context(), publicID, req.SkuID, req.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	publicID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || publicID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "productId must be a positive integer")
	}
	return publicID, nil
}

func parseSearchFilters(r *http.Request) (catalog.SearchFilters, error) {
	q := r.URL.Query()
	filters := catalog.SearchFilters{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Brand:    strings.TrimSpace(q.Get("brand")),
		Gender:   strings.TrimSpace(q.Get("gender")),
		Colour:   strings.TrimSpace(q.Get("colour")),
	}

	if raw := q.Get("priceMin"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "priceMin must be a decimal number")
		}
		filters.PriceMin = &value
	}
	if raw := q.Get("priceMax"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "priceMax must be a decimal number")
		}
		filters.PriceMax = &value
	}
	if filters.PriceMin != nil && filters.PriceMax != nil && filters.PriceMax.LessThan(*filters.PriceMin) {
		return filters, pkgerrors.New(pkgerrors.CodeValidation, "priceMax must not be below priceMin")
	}
	if raw := q.Get("minRating"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value > 5 {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "minRating must be between 0 and 5")
		}
		filters.MinRating = &value
	}
	return filters, nil
}
