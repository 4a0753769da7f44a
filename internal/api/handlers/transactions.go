package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/api/validate"
	"github.com/baharkarakas/wallet-service/internal/middleware"
	"github.com/baharkarakas/wallet-service/internal/models"
	"github.com/baharkarakas/wallet-service/internal/services"
)

type createTransactionReq struct {
	Type   models.TransactionType `json:"type" validate:"required,oneof=CREDIT DEBIT"`
	Amount validate.Number        `json:"amount"`

	amount decimal.Decimal // set by parseAmount
}

func (r *createTransactionReq) parseAmount() *validate.ErrField {
	d, ef := validate.ParseAmount("amount", r.Amount)
	r.amount = d
	return ef
}

// TransactionHandler serves the user-facing ledger. The acting user is
// always the token subject.
type TransactionHandler struct {
	Svc *services.TransactionService
}

func NewTransactionHandler(svc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Svc: svc}
}

// POST /transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionReq
	if !bind(w, r, &req) {
		return
	}
	uid := middleware.UserID(r.Context())

	view, err := h.Svc.Create(r.Context(), uid, req.Type, req.amount)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	slog.Info("transaction created", "id", view.ID, "user_id", uid, "type", view.Type, "source", "user")
	httpx.WriteJSON(w, http.StatusCreated, view)
}

// GET /transactions?type=&page=&limit=
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := validate.ListQuery(r.URL.Query())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	out, err := h.Svc.FindAllByUser(r.Context(), middleware.UserID(r.Context()), services.ListFilter{
		Type:  q.Type,
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// GET /transactions/{id}
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if ef := validate.UUID("id", id); ef != nil {
		writeErr(w, r, validate.Errs{*ef})
		return
	}
	view, err := h.Svc.FindOneByUser(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}
