// Package app wires stores and services into the engines shared by the
// API server and the admin CLI.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	accountStore "github.com/MrJamesThe3rd/finanzas/internal/account/store"
	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/finanzas/internal/budget/store"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	categoryStore "github.com/MrJamesThe3rd/finanzas/internal/category/store"
	"github.com/MrJamesThe3rd/finanzas/internal/config"
	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	creditcardStore "github.com/MrJamesThe3rd/finanzas/internal/creditcard/store"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	cycleStore "github.com/MrJamesThe3rd/finanzas/internal/cycle/store"
	"github.com/MrJamesThe3rd/finanzas/internal/dashboard"
	dashboardStore "github.com/MrJamesThe3rd/finanzas/internal/dashboard/store"
	"github.com/MrJamesThe3rd/finanzas/internal/demo"
	demoStore "github.com/MrJamesThe3rd/finanzas/internal/demo/store"
	"github.com/MrJamesThe3rd/finanzas/internal/exchange"
	"github.com/MrJamesThe3rd/finanzas/internal/export"
	"github.com/MrJamesThe3rd/finanzas/internal/importer"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	loanStore "github.com/MrJamesThe3rd/finanzas/internal/loan/store"
	"github.com/MrJamesThe3rd/finanzas/internal/logging"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finanzas/internal/matching/store"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	templateStore "github.com/MrJamesThe3rd/finanzas/internal/quicktemplate/store"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finanzas/internal/transaction/store"
)

type Services struct {
	Rates        *exchange.Provider
	Cycles       *cycle.Service
	Accounts     *account.Service
	Categories   *category.Service
	Budgets      *budget.Service
	Loans        *loan.Service
	Cards        *creditcard.Service
	Rules        *matching.Service
	Transactions *transaction.Service
	Templates    *quicktemplate.Service
	Import       *importer.Service
	Export       *export.Service
	Dashboard    *dashboard.Service
	Demo         *demo.Service
}

// New builds every service on db. onFallback, when set, runs each time the
// exchange provider falls back to the configured rate.
func New(db *sql.DB, cfg *config.Config, logger *slog.Logger, onFallback func()) *Services {
	rateOpts := []exchange.Option{
		exchange.WithLookback(cfg.Rates.LookbackDays),
		exchange.WithLogger(logging.Component(logger, "exchange")),
	}

	if onFallback != nil {
		rateOpts = append(rateOpts, exchange.WithDegradeHook(onFallback))
	}

	s := &Services{
		Rates: exchange.NewProvider(
			exchange.NewHTTPSource(cfg.Rates.URL, cfg.Rates.Token, cfg.Rates.Timeout),
			cfg.Rates.Fallback,
			rateOpts...,
		),
		Cycles:     cycle.NewService(cycleStore.New(db)),
		Categories: category.NewService(categoryStore.New(db)),
		Cards:      creditcard.NewService(creditcardStore.New(db)),
	}

	s.Accounts = account.NewService(accountStore.New(db), s.Rates)
	s.Budgets = budget.NewService(budgetStore.New(db), s.Cycles, s.Categories)
	s.Loans = loan.NewService(loanStore.New(db), s.Rates)
	s.Rules = matching.NewService(matchingStore.New(db), s.Categories)

	s.Transactions = transaction.NewService(
		txStore.New(db), s.Categories, s.Accounts, s.Rates,
		transaction.WithLogger(logging.Component(logger, "transaction")),
	)

	s.Templates = quicktemplate.NewService(templateStore.New(db), s.Categories, s.Transactions)
	s.Export = export.NewService(s.Transactions)

	s.Import = importer.NewService(
		s.Categories, s.Accounts, s.Transactions,
		importer.WithMatcher(s.Rules),
		importer.WithLogger(logging.Component(logger, "importer")),
	)

	s.Dashboard = dashboard.NewService(
		dashboardStore.New(db), s.Cycles, s.Budgets, s.Loans, s.Cards, s.Accounts, s.Rates,
		dashboard.WithDailyFloor(cfg.Budget.DailyFloor),
		dashboard.WithLogger(logging.Component(logger, "dashboard")),
	)

	s.Demo = demo.NewService(demoStore.New(db), demo.Deps{
		Cycles:       s.Cycles,
		Accounts:     s.Accounts,
		Categories:   s.Categories,
		Budgets:      s.Budgets,
		Loans:        s.Loans,
		Cards:        s.Cards,
		Transactions: s.Transactions,
		Templates:    s.Templates,
	}, logging.Component(logger, "demo"))

	return s
}
