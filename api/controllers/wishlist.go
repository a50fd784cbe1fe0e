package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/api/middleware"
	"github.com/jordanvasquez/threadline-backend/api/responses"
	"github.com/jordanvasquez/threadline-backend/internal/wishlist"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
)

// wishlistEnvelope is the response body for every wishlist operation. GET
// carries resolved product projections; mutations carry raw product id refs.
type wishlistEnvelope struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Wishlist      any    `json:"wishlist"`
	WishlistCount int    `json:"wishlistCount"`
}

// GetWishlist returns the caller's wishlist resolved to product summaries.
// Inactive products are filtered from the view without shrinking the
// underlying set.
func GetWishlist(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sessionUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolved, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, wishlistEnvelope{
			Success:       true,
			Message:       "wishlist fetched successfully",
			Wishlist:      resolved.Products,
			WishlistCount: len(resolved.Products),
		})
	}
}

// AddToWishlist adds the product to the caller's wishlist. A first-time add
// responds 201; re-adding an existing member responds 200. Both bodies carry
// the full set of raw product id refs.
func AddToWishlist(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sessionUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		publicID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Add(r.Context(), userID, publicID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		message := "product already in wishlist"
		if result.NewlyAdded {
			status = http.StatusCreated
			message = "product added to wishlist"
		}
		responses.WriteJSON(w, status, wishlistEnvelope{
			Success:       true,
			Message:       message,
			Wishlist:      result.Refs,
			WishlistCount: len(result.Refs),
		})
	}
}

// RemoveFromWishlist removes the product from the caller's wishlist.
// Removing a product that is not a member still responds 200.
func RemoveFromWishlist(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sessionUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		publicID, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		refs, err := svc.Remove(r.Context(), userID, publicID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, wishlistEnvelope{
			Success:       true,
			Message:       "product removed from wishlist",
			Wishlist:      refs,
			WishlistCount: len(refs),
		})
	}
}

// ClearWishlist empties the caller's wishlist unconditionally.
func ClearWishlist(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := sessionUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		refs, err := svc.Clear(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, wishlistEnvelope{
			Success:       true,
			Message:       "wishlist cleared",
			Wishlist:      refs,
			WishlistCount: len(refs),
		})
	}
}

// sessionUserID reads the authenticated identity seeded by the auth
// middleware. Request bodies and query params are never consulted.
func sessionUserID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session identity")
	}
	return userID, nil
}
