package demo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/budget"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/creditcard"
	"github.com/MrJamesThe3rd/finanzas/internal/cycle"
	"github.com/MrJamesThe3rd/finanzas/internal/loan"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/quicktemplate"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=demo
type Resetter interface {
	Reset(ctx context.Context) error
}

type Cycles interface {
	UpdateConfig(ctx context.Context, params cycle.UpdateConfigParams) (*cycle.Config, error)
	Recent(ctx context.Context, n int) ([]cycle.Cycle, error)
	Today() time.Time
}

type Accounts interface {
	Create(ctx context.Context, params account.CreateParams) (*account.Account, error)
}

type Categories interface {
	Create(ctx context.Context, params category.CreateParams) (*category.Category, error)
	EnsureSystem(ctx context.Context, name string, kind category.Kind) (*category.Category, error)
}

type Budgets interface {
	UpsertCell(ctx context.Context, params budget.CreateParams) (*budget.Plan, error)
}

type Loans interface {
	Create(ctx context.Context, params loan.CreateParams) (*loan.Loan, error)
}

type Cards interface {
	CreateCard(ctx context.Context, params creditcard.CardParams) (*creditcard.Card, error)
	RegisterInstallment(ctx context.Context, cardID int64, params creditcard.InstallmentParams) (*creditcard.Installment, error)
}

type Transactions interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

type Templates interface {
	Create(ctx context.Context, params quicktemplate.Params) (*quicktemplate.Template, error)
}

// Deps are the engines the demo is loaded through, so every row passes the
// same validation and balance bookkeeping as user input.
type Deps struct {
	Cycles       Cycles
	Accounts     Accounts
	Categories   Categories
	Budgets      Budgets
	Loans        Loans
	Cards        Cards
	Transactions Transactions
	Templates    Templates
}

type Service struct {
	reset  Resetter
	deps   Deps
	logger *slog.Logger
}

func NewService(reset Resetter, deps Deps, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{reset: reset, deps: deps, logger: logger}
}

// Counts reports what LoadDemo created.
type Counts struct {
	Accounts       int `json:"accounts"`
	Categories     int `json:"categories"`
	BudgetPlans    int `json:"budget_plans"`
	Loans          int `json:"loans"`
	CreditCards    int `json:"credit_cards"`
	Installments   int `json:"installments"`
	Transactions   int `json:"transactions"`
	QuickTemplates int `json:"quick_templates"`
}

// ClearAll deletes every user row.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.reset.Reset(ctx); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}

	s.logger.Warn("all data cleared")

	return nil
}

// LoadDemo replaces all data with the given dataset, or the embedded one when nil.
func (s *Service) LoadDemo(ctx context.Context, ds *Dataset) (*Counts, error) {
	if ds == nil {
		var err error
		if ds, err = Default(); err != nil {
			return nil, err
		}
	}

	if err := s.ClearAll(ctx); err != nil {
		return nil, err
	}

	l := &loader{deps: s.deps, ds: ds, counts: &Counts{}}

	steps := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"billing cycle", l.billingCycle},
		{"accounts", l.accounts},
		{"categories", l.categories},
		{"budget plans", l.budgets},
		{"loans", l.loans},
		{"credit cards", l.cards},
		{"transactions", l.transactions},
		{"quick templates", l.templates},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return nil, fmt.Errorf("load demo %s: %w", step.name, err)
		}
	}

	s.logger.Info("demo data loaded",
		"accounts", l.counts.Accounts,
		"transactions", l.counts.Transactions,
		"budget_plans", l.counts.BudgetPlans,
	)

	return l.counts, nil
}

type loader struct {
	deps   Deps
	ds     *Dataset
	counts *Counts

	today          time.Time
	cycles         []cycle.Cycle
	accountIDs     map[string]int64
	categoryByName map[string]*category.Category
	loanByName     map[string]*loan.Loan
}

func (l *loader) billingCycle(ctx context.Context) error {
	if l.ds.StartDay > 0 {
		if _, err := l.deps.Cycles.UpdateConfig(ctx, cycle.UpdateConfigParams{StartDay: l.ds.StartDay}); err != nil {
			return err
		}
	}

	cycles, err := l.deps.Cycles.Recent(ctx, l.ds.Cycles)
	if err != nil {
		return err
	}

	l.cycles = cycles
	l.today = l.deps.Cycles.Today()

	return nil
}

func (l *loader) accounts(ctx context.Context) error {
	l.accountIDs = make(map[string]int64, len(l.ds.Accounts))

	for _, a := range l.ds.Accounts {
		cur, err := money.ParseCurrency(a.Currency)
		if err != nil {
			return fmt.Errorf("account %q: %w", a.Name, err)
		}

		created, err := l.deps.Accounts.Create(ctx, account.CreateParams{
			Name:           a.Name,
			Kind:           account.Kind(a.Kind),
			Currency:       cur,
			InitialBalance: a.InitialBalance,
			IsDefault:      a.Default,
		})
		if err != nil {
			return fmt.Errorf("account %q: %w", a.Name, err)
		}

		l.accountIDs[a.Name] = created.ID
		l.counts.Accounts++
	}

	return nil
}

func (l *loader) categories(ctx context.Context) error {
	l.categoryByName = make(map[string]*category.Category, len(l.ds.Categories)+1)

	for _, c := range l.ds.Categories {
		params := category.CreateParams{
			Name:  c.Name,
			Kind:  category.Kind(c.Kind),
			Icon:  c.Icon,
			Color: c.Color,
		}

		if c.Subtype != "" {
			params.ExpenseSubtype = new(category.ExpenseSubtype(c.Subtype))
		}

		created, err := l.deps.Categories.Create(ctx, params)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}

		l.categoryByName[c.Name] = created
		l.counts.Categories++
	}

	return nil
}

func (l *loader) budgets(ctx context.Context) error {
	for _, cy := range l.cycles {
		for _, b := range l.ds.Budgets {
			c, err := l.category(b.Category)
			if err != nil {
				return err
			}

			_, err = l.deps.Budgets.UpsertCell(ctx, budget.CreateParams{
				CycleName:  cy.Name,
				Year:       cy.Year,
				CategoryID: c.ID,
				Amount:     b.Amount,
			})
			if err != nil {
				return fmt.Errorf("plan %s %d %q: %w", cy.Name, cy.Year, b.Category, err)
			}

			l.counts.BudgetPlans++
		}
	}

	return nil
}

func (l *loader) loans(ctx context.Context) error {
	l.loanByName = make(map[string]*loan.Loan, len(l.ds.Loans))

	for _, ln := range l.ds.Loans {
		cur, err := money.ParseCurrency(ln.Currency)
		if err != nil {
			return fmt.Errorf("loan %q: %w", ln.Name, err)
		}

		params := loan.CreateParams{
			Name:                 ln.Name,
			Entity:               ln.Entity,
			OriginalAmount:       ln.OriginalAmount,
			AnnualRate:           ln.AnnualRate,
			TotalInstallments:    ln.TotalInstallments,
			BaseInstallmentsPaid: ln.BaseInstallmentsPaid,
			PaymentFrequency:     loan.FrequencyMonthly,
			StartDate:            l.today.AddDate(0, -ln.MonthsAgo, 0),
			Currency:             cur,
		}

		if ln.PaymentDay > 0 {
			params.PaymentDay = new(ln.PaymentDay)
		}

		created, err := l.deps.Loans.Create(ctx, params)
		if err != nil {
			return fmt.Errorf("loan %q: %w", ln.Name, err)
		}

		l.loanByName[ln.Name] = created
		l.counts.Loans++
	}

	return nil
}

func (l *loader) cards(ctx context.Context) error {
	for _, c := range l.ds.CreditCards {
		card, err := l.deps.Cards.CreateCard(ctx, creditcard.CardParams{
			Name:                  c.Name,
			Bank:                  c.Bank,
			CardType:              c.CardType,
			LastFour:              c.LastFour,
			CreditLimit:           c.CreditLimit,
			RevolvingDebt:         c.RevolvingDebt,
			PaymentDueDay:         c.PaymentDueDay,
			StatementCloseDay:     c.StatementCloseDay,
			RevolvingInterestRate: c.RevolvingInterestRate,
		})
		if err != nil {
			return fmt.Errorf("card %q: %w", c.Name, err)
		}

		l.counts.CreditCards++

		for _, i := range c.Installments {
			_, err := l.deps.Cards.RegisterInstallment(ctx, card.ID, creditcard.InstallmentParams{
				Concept:            i.Concept,
				OriginalAmount:     i.OriginalAmount,
				PurchaseDate:       l.today.AddDate(0, -i.MonthsAgo, 0),
				CurrentInstallment: i.CurrentInstallment,
				TotalInstallments:  i.TotalInstallments,
				MonthlyPayment:     i.MonthlyPayment,
			})
			if err != nil {
				return fmt.Errorf("installment %q: %w", i.Concept, err)
			}

			l.counts.Installments++
		}
	}

	return nil
}

// transactions posts the recurring rows on their day of each demo cycle,
// skipping days after today.
func (l *loader) transactions(ctx context.Context) error {
	var loanCategory *category.Category

	if len(l.ds.LoanPayments) > 0 {
		c, err := l.deps.Categories.EnsureSystem(ctx, category.SystemLoans, category.KindExpense)
		if err != nil {
			return err
		}

		loanCategory = c
	}

	for _, cy := range l.cycles {
		for _, t := range l.ds.Transactions {
			date, ok := l.dayOf(cy, t.Day)
			if !ok {
				continue
			}

			c, err := l.category(t.Category)
			if err != nil {
				return err
			}

			accountID, err := l.account(t.Account)
			if err != nil {
				return err
			}

			err = l.post(ctx, transaction.CreateParams{
				Date:         date,
				CategoryID:   c.ID,
				AccountID:    accountID,
				Amount:       t.Amount,
				ExchangeRate: t.ExchangeRate,
				Status:       transaction.StatusCompleted,
				Description:  t.Description,
			})
			if err != nil {
				return err
			}
		}

		for _, p := range l.ds.LoanPayments {
			date, ok := l.dayOf(cy, p.Day)
			if !ok {
				continue
			}

			ln, ok := l.loanByName[p.Loan]
			if !ok {
				return fmt.Errorf("unknown loan %q", p.Loan)
			}

			accountID, err := l.account(p.Account)
			if err != nil {
				return err
			}

			err = l.post(ctx, transaction.CreateParams{
				Date:         date,
				CategoryID:   loanCategory.ID,
				AccountID:    accountID,
				Amount:       ln.MonthlyPayment,
				Currency:     ln.Currency,
				ExchangeRate: p.ExchangeRate,
				Status:       transaction.StatusCompleted,
				Description:  p.Description,
				LoanID:       &ln.ID,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *loader) post(ctx context.Context, params transaction.CreateParams) error {
	if _, err := l.deps.Transactions.Create(ctx, params); err != nil {
		return fmt.Errorf("%s on %s: %w", params.Description, params.Date.Format(time.DateOnly), err)
	}

	l.counts.Transactions++

	return nil
}

func (l *loader) templates(ctx context.Context) error {
	for _, q := range l.ds.QuickTemplates {
		c, err := l.category(q.Category)
		if err != nil {
			return err
		}

		params := quicktemplate.Params{
			Name:        q.Name,
			Description: q.Description,
			Amount:      q.Amount,
			Kind:        transaction.Kind(q.Kind),
			CategoryID:  c.ID,
		}

		if q.Account != "" {
			id, err := l.account(q.Account)
			if err != nil {
				return err
			}

			params.AccountID = &id
		}

		if _, err := l.deps.Templates.Create(ctx, params); err != nil {
			return fmt.Errorf("quick template %q: %w", q.Name, err)
		}

		l.counts.QuickTemplates++
	}

	return nil
}

// dayOf returns the day-th day of the cycle, if it is inside it and not in the future.
func (l *loader) dayOf(cy cycle.Cycle, day int) (time.Time, bool) {
	d := cy.Start.AddDate(0, 0, day)
	if !cy.Contains(d) || d.After(l.today) {
		return time.Time{}, false
	}

	return d, true
}

func (l *loader) category(name string) (*category.Category, error) {
	c, ok := l.categoryByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", name)
	}

	return c, nil
}

func (l *loader) account(name string) (int64, error) {
	id, ok := l.accountIDs[name]
	if !ok {
		return 0, fmt.Errorf("unknown account %q", name)
	}

	return id, nil
}
