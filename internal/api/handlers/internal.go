package handlers

import (
	"log/slog"
	"net/http"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/services"
)

// internalTransactionReq names the owning user in the body; the internal
// token only proves the caller is the users-service.
type internalTransactionReq struct {
	UserID string `json:"userId" validate:"required,uuid"`
	createTransactionReq
}

type InternalHandler struct {
	Svc *services.TransactionService
}

func NewInternalHandler(svc *services.TransactionService) *InternalHandler {
	return &InternalHandler{Svc: svc}
}

// POST /internal/transactions
func (h *InternalHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req internalTransactionReq
	if !bind(w, r, &req) {
		return
	}
	view, err := h.Svc.Create(r.Context(), req.UserID, req.Type, req.amount)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	slog.Info("transaction created", "id", view.ID, "user_id", req.UserID, "type", view.Type, "source", "internal")
	httpx.WriteJSON(w, http.StatusCreated, view)
}
