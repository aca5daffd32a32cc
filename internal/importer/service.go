package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finanzas/internal/account"
	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/matching"
	"github.com/MrJamesThe3rd/finanzas/internal/money"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Categories interface {
	List(ctx context.Context, filter category.ListFilter) ([]*category.Category, error)
	EnsureSystem(ctx context.Context, name string, kind category.Kind) (*category.Category, error)
}

type Accounts interface {
	List(ctx context.Context, filter account.ListFilter) ([]*account.Account, error)
}

type Transactions interface {
	ImportBatch(ctx context.Context, params []transaction.CreateParams) (*transaction.ImportResult, error)
	CreateBatch(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error)
}

// Matcher suggests a cleaner description and category for a raw bank text.
type Matcher interface {
	Suggest(ctx context.Context, rawDescription string) (*matching.Rule, error)
}

type Service struct {
	categories   Categories
	accounts     Accounts
	transactions Transactions
	matcher      Matcher
	importers    map[Format]Importer
	now          func() time.Time
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func WithMatcher(m Matcher) Option {
	return func(s *Service) {
		s.matcher = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(categories Categories, accounts Accounts, transactions Transactions, opts ...Option) *Service {
	s := &Service{
		categories:   categories,
		accounts:     accounts,
		transactions: transactions,
		importers: map[Format]Importer{
			FormatXLSX: XLSX{},
			FormatCSV:  CSV{},
		},
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type Params struct {
	Filename string
	// AccountID is used for rows without a "Cuenta" column value.
	AccountID *int64
	// Force stores every row even when some look like existing transactions.
	Force bool
}

type Result struct {
	ID        uuid.UUID
	Format    Format
	Rows      int
	Imported  []*transaction.Transaction
	Conflicts []transaction.Conflict
	Pending   int // rows held back together with the conflicts
}

// Import parses the upload, resolves category and account names and stores
// the rows as one batch. Without Force, a batch with look-alike rows is
// returned unsaved with its conflicts.
func (s *Service) Import(ctx context.Context, params Params, r io.Reader) (*Result, error) {
	format, err := FormatOf(params.Filename)
	if err != nil {
		return nil, err
	}

	rows, err := s.importers[format].Parse(r)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}

		return nil, apperr.InvalidField("file", fmt.Sprintf("could not be read: %v", err))
	}

	res := &Result{ID: uuid.New(), Format: format, Rows: len(rows)}
	log := s.logger.With("import_id", res.ID, "format", format, "rows", len(rows))

	batch, err := s.resolve(ctx, rows, params.AccountID)
	if err != nil {
		return nil, err
	}

	if params.Force {
		res.Imported, err = s.transactions.CreateBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		log.Info("import stored", "forced", true)

		return res, nil
	}

	out, err := s.transactions.ImportBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	res.Imported = out.Imported
	res.Conflicts = out.Conflicts
	res.Pending = len(out.New)

	if len(res.Conflicts) > 0 {
		log.Info("import held for review", "conflicts", len(res.Conflicts))
	} else {
		log.Info("import stored")
	}

	return res, nil
}

// Template writes the import workbook with the current categories and accounts.
func (s *Service) Template(ctx context.Context, w io.Writer) error {
	active := true

	cats, err := s.categories.List(ctx, category.ListFilter{Active: &active})
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	accts, err := s.accounts.List(ctx, account.ListFilter{Active: &active})
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	data := TemplateData{Sample: s.now()}

	for _, c := range cats {
		if c.Kind.Postable() {
			data.Categories = append(data.Categories, c.Name)
		}
	}

	for _, a := range accts {
		data.Accounts = append(data.Accounts, a.Name)
	}

	return WriteTemplate(w, data)
}

type names struct {
	categories map[string][]*category.Category
	byID       map[int64]*category.Category
	accounts   map[string]*account.Account
	fallback   *int64
	unsorted   map[transaction.Kind]*category.Category
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Service) resolve(ctx context.Context, rows []Row, accountID *int64) ([]transaction.CreateParams, error) {
	n, err := s.lookup(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var fields []apperr.FieldError

	batch := make([]transaction.CreateParams, 0, len(rows))

	for _, row := range rows {
		p, errs, err := s.params(ctx, n, row)
		if err != nil {
			return nil, err
		}

		if len(errs) > 0 {
			fields = append(fields, errs...)
			continue
		}

		batch = append(batch, p)
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("import rows reference unknown data", fields...)
	}

	return batch, nil
}

func (s *Service) lookup(ctx context.Context, accountID *int64) (*names, error) {
	active := true

	cats, err := s.categories.List(ctx, category.ListFilter{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	accts, err := s.accounts.List(ctx, account.ListFilter{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	n := &names{
		categories: make(map[string][]*category.Category, len(cats)),
		byID:       make(map[int64]*category.Category, len(cats)),
		accounts:   make(map[string]*account.Account, len(accts)),
		fallback:   accountID,
		unsorted:   make(map[transaction.Kind]*category.Category, 2),
	}

	for _, c := range cats {
		if c.Kind.Postable() {
			n.categories[key(c.Name)] = append(n.categories[key(c.Name)], c)
			n.byID[c.ID] = c
		}
	}

	for _, a := range accts {
		n.accounts[key(a.Name)] = a

		if n.fallback == nil && a.IsDefault {
			n.fallback = &a.ID
		}
	}

	return n, nil
}

// params turns a row into create params. Field problems are returned as
// the second value; the error is reserved for storage failures.
func (s *Service) params(ctx context.Context, n *names, row Row) (transaction.CreateParams, []apperr.FieldError, error) {
	var fields []apperr.FieldError

	field := func(name, msg string) {
		fields = append(fields, apperr.Field(fmt.Sprintf("rows[%d].%s", row.Line, name), msg))
	}

	p := transaction.CreateParams{
		Date:         row.Date,
		Amount:       money.Round(row.Amount),
		ExchangeRate: row.ExchangeRate,
		Kind:         row.Kind,
		Status:       transaction.StatusCompleted,
		Description:  row.Description,
		Notes:        row.Notes,
	}

	if row.Currency != "" {
		c, err := money.ParseCurrency(row.Currency)
		if err != nil {
			field("currency", "must be PEN or USD")
		}

		p.Currency = c
	}

	switch {
	case row.Account != "":
		a, ok := n.accounts[key(row.Account)]
		if !ok {
			field("account", fmt.Sprintf("no active account named %q", row.Account))
			break
		}

		p.AccountID = a.ID
	case n.fallback != nil:
		p.AccountID = *n.fallback
	default:
		field("account", "is required when no account is chosen for the file")
	}

	if s.matcher != nil {
		rule, err := s.matcher.Suggest(ctx, row.Description)
		if err != nil {
			return p, nil, fmt.Errorf("suggest description: %w", err)
		}

		if rule != nil && rule.Description != "" {
			p.Description = rule.Description
		}

		if rule != nil && rule.CategoryID != nil && row.Category == "" {
			if c, ok := n.byID[*rule.CategoryID]; ok && (row.KindImplied || string(c.Kind) == string(row.Kind)) {
				p.CategoryID = c.ID
				p.Kind = transaction.Kind(c.Kind)

				return p, fields, nil
			}
		}
	}

	if row.Category == "" {
		c, err := s.unsorted(ctx, n, p.Kind)
		if err != nil {
			return p, nil, err
		}

		p.CategoryID = c.ID

		return p, fields, nil
	}

	c, ok := pickCategory(n.categories[key(row.Category)], row)
	switch {
	case !ok && len(n.categories[key(row.Category)]) == 0:
		field("category", fmt.Sprintf("no active category named %q", row.Category))
	case !ok:
		field("category", fmt.Sprintf("%q is not a %s category", row.Category, row.Kind))
	default:
		p.CategoryID = c.ID
		p.Kind = transaction.Kind(c.Kind)
	}

	return p, fields, nil
}

// pickCategory chooses among same-named categories. An explicit kind must
// match; a kind implied by the amount's sign only breaks ties.
func pickCategory(candidates []*category.Category, row Row) (*category.Category, bool) {
	for _, c := range candidates {
		if string(c.Kind) == string(row.Kind) {
			return c, true
		}
	}

	if row.KindImplied && len(candidates) > 0 {
		return candidates[0], true
	}

	return nil, false
}

func (s *Service) unsorted(ctx context.Context, n *names, kind transaction.Kind) (*category.Category, error) {
	if c, ok := n.unsorted[kind]; ok {
		return c, nil
	}

	name, ck := category.SystemUnsortedExpense, category.KindExpense
	if kind == transaction.KindIncome {
		name, ck = category.SystemUnsortedIncome, category.KindIncome
	}

	c, err := s.categories.EnsureSystem(ctx, name, ck)
	if err != nil {
		return nil, fmt.Errorf("ensure %s: %w", name, err)
	}

	n.unsorted[kind] = c

	return c, nil
}
