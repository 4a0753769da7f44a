package handlers

import (
	"net/http"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/middleware"
	"github.com/baharkarakas/wallet-service/internal/services"
)

type BalanceHandler struct {
	Svc *services.BalanceService
}

func NewBalanceHandler(svc *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{Svc: svc}
}

// GET /balance
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.GetBalance(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b.View())
}
