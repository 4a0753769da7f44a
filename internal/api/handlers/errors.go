package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/api/validate"
	"github.com/baharkarakas/wallet-service/internal/middleware"
	"github.com/baharkarakas/wallet-service/internal/repository"
	"github.com/baharkarakas/wallet-service/internal/services"
)

// writeErr maps service and store errors onto the HTTP error body.
// Causes of 500s are logged, never echoed.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *services.ValidationError
		errs validate.Errs
	)
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, verr.Msg, nil)
	case errors.As(err, &errs):
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, "validation failed", errs)
	case errors.Is(err, repository.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "transaction not found", nil)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()),
			"err", err,
		)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error", nil)
	}
}

type amountParser interface{ parseAmount() *validate.ErrField }

// bind decodes and validates a JSON body into dst, writing the 400 itself
// when it returns false. Field errors are reported together.
func bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := httpx.ReadJSON(w, r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.CodeValidation, err.Error(), nil)
		return false
	}
	var errs validate.Errs
	if err := validate.Struct(dst); err != nil && !errors.As(err, &errs) {
		writeErr(w, r, err)
		return false
	}
	if p, ok := dst.(amountParser); ok {
		if ef := p.parseAmount(); ef != nil {
			errs = append(errs, *ef)
		}
	}
	if len(errs) > 0 {
		writeErr(w, r, errs)
		return false
	}
	return true
}
