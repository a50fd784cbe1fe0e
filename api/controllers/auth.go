package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/api/middleware"
	"github.com/jordanvasquez/threadline-backend/api/responses"
	"github.com/jordanvasquez/threadline-backend/api/validators"
	"github.com/jordanvasquez/threadline-backend/internal/auth"
	pkgerrors "github.com/jordanvasquez/threadline-backend/pkg/errors"
	"github.com/jordanvasquez/threadline-backend/pkg/logger"
)

func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Register(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, resp)
	}
}

func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func Logout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}

func Me(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session identity"))
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
