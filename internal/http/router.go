package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finanzas/internal/auth"
	"github.com/MrJamesThe3rd/finanzas/internal/http/account"
	"github.com/MrJamesThe3rd/finanzas/internal/http/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/http/category"
	"github.com/MrJamesThe3rd/finanzas/internal/http/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/http/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finanzas/internal/http/data"
	"github.com/MrJamesThe3rd/finanzas/internal/http/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/http/export"
	"github.com/MrJamesThe3rd/finanzas/internal/http/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/http/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/http/matching"
	"github.com/MrJamesThe3rd/finanzas/internal/http/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/http/render"
	"github.com/MrJamesThe3rd/finanzas/internal/http/transaction"
	"github.com/MrJamesThe3rd/finanzas/internal/metrics"
)

type Handlers struct {
	Accounts       *account.Handler
	Categories     *category.Handler
	Transactions   *transaction.Handler
	Transfers      *transaction.TransferHandler
	BillingCycle   *cycle.Handler
	Budgets        *budget.Handler
	Loans          *loan.Handler
	CreditCards    *creditcard.Handler
	Dashboard      *dashboard.Handler
	QuickTemplates *quicktemplate.Handler
	ExchangeRate   *exchange.Handler
	Data           *data.Handler
	Import         *importer.Handler
	Rules          *matching.Handler
	Export         *export.Handler
}

// Pinger reports database health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
	Metrics        *metrics.Metrics
	// Verifier guards /api. Nil leaves it open.
	Verifier *auth.Verifier
	DB       Pinger
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Exported-Rows"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthz(opts.DB))

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		if opts.Timeout > 0 {
			r.Use(middleware.Timeout(opts.Timeout))
		}

		r.Use(auth.Middleware(opts.Verifier))

		r.Route("/accounts", h.Accounts.Routes)
		r.Route("/categories", h.Categories.Routes)
		r.Route("/transactions", h.Transactions.Routes)
		r.Route("/transfers", h.Transfers.Routes)
		r.Route("/billing-cycle", h.BillingCycle.Routes)
		r.Route("/budget-plans", h.Budgets.Routes)
		r.Route("/loans", h.Loans.Routes)
		r.Route("/credit-cards", h.CreditCards.Routes)
		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/quick-templates", h.QuickTemplates.Routes)
		r.Route("/exchange-rate", h.ExchangeRate.Routes)
		r.Route("/data", h.Data.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/description-rules", h.Rules.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			render.OK(w, healthResponse{Status: "ok", Database: "unknown"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			render.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
			return
		}

		render.OK(w, healthResponse{Status: "ok", Database: "ok"})
	}
}
