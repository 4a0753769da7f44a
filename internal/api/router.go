package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/wallet-service/internal/api/handlers"
	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/auth"
	"github.com/baharkarakas/wallet-service/internal/config"
	"github.com/baharkarakas/wallet-service/internal/metrics"
	"github.com/baharkarakas/wallet-service/internal/middleware"
	"github.com/baharkarakas/wallet-service/internal/services"
)

type RouterDeps struct {
	Cfg            config.Config
	UserTokens     *auth.UserTokens
	InternalTokens *auth.InternalTokens
	TxnSvc         *services.TransactionService
	BalanceSvc     *services.BalanceService
	DB             handlers.Pinger
}

func NewRouter(d RouterDeps) http.Handler {
	metrics.Init()

	th := handlers.NewTransactionHandler(d.TxnSvc)
	ih := handlers.NewInternalHandler(d.TxnSvc)
	bh := handlers.NewBalanceHandler(d.BalanceSvc)
	hh := handlers.NewHealthHandler(d.DB)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", hh.Check)
	r.Handle("/metrics", metrics.Handler())

	// ---------- user context ----------
	r.Group(func(r chi.Router) {
		r.Use(middleware.UserAuth(d.UserTokens))

		r.Post("/transactions", th.Create)
		r.Get("/transactions", th.List)
		r.Get("/transactions/{id}", th.Get)
		r.Get("/balance", bh.Get)
	})

	// ---------- internal context ----------
	r.Route("/internal", func(r chi.Router) {
		r.Use(middleware.InternalAuth(d.InternalTokens))

		r.Post("/transactions", ih.CreateTransaction)
	})

	return r
}
