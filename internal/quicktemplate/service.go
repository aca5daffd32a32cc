package quicktemplate

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
	"github.com/MrJamesThe3rd/finanzas/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=quicktemplate
type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id int64) (*Template, error)
	UpdateTemplate(ctx context.Context, t *Template) error
	DeleteTemplate(ctx context.Context, id int64) error
	ListTemplates(ctx context.Context) ([]*Template, error)
}

type Categories interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
}

type Transactions interface {
	Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error)
}

type Service struct {
	repo         Repository
	categories   Categories
	transactions Transactions
	now          func() time.Time
}

func NewService(repo Repository, categories Categories, transactions Transactions) *Service {
	return &Service{repo: repo, categories: categories, transactions: transactions, now: time.Now}
}

type Params struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Kind        transaction.Kind
	CategoryID  int64
	AccountID   *int64
}

func (s *Service) Create(ctx context.Context, params Params) (*Template, error) {
	t := &Template{}
	if err := s.apply(ctx, t, params); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Template, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Template, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, t, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTemplate(ctx, id)
}

// ApplyParams override the template's defaults for one posting.
type ApplyParams struct {
	Date        time.Time
	AccountID   *int64
	Amount      *decimal.Decimal
	Description *string
	Notes       string
}

// Apply posts a completed transaction seeded from the template.
func (s *Service) Apply(ctx context.Context, id int64, params ApplyParams) (*transaction.Transaction, error) {
	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	accountID := t.AccountID
	if params.AccountID != nil {
		accountID = params.AccountID
	}

	if accountID == nil {
		return nil, apperr.InvalidField("account_id", "is required when the template has no account")
	}

	create := transaction.CreateParams{
		Date:        params.Date,
		CategoryID:  t.CategoryID,
		AccountID:   *accountID,
		Amount:      t.Amount,
		Kind:        t.Kind,
		Status:      transaction.StatusCompleted,
		Description: t.Description,
		Notes:       params.Notes,
	}

	if create.Date.IsZero() {
		create.Date = s.now()
	}

	if params.Amount != nil {
		create.Amount = *params.Amount
	}

	if params.Description != nil {
		create.Description = *params.Description
	}

	if create.Description == "" {
		create.Description = t.Name
	}

	return s.transactions.Create(ctx, create)
}

func (s *Service) apply(ctx context.Context, t *Template, params Params) error {
	var fields []apperr.FieldError

	name := strings.TrimSpace(params.Name)
	if name == "" {
		fields = append(fields, apperr.Field("name", "is required"))
	}

	if !params.Amount.IsPositive() {
		fields = append(fields, apperr.Field("amount", "must be positive"))
	}

	if !params.Kind.Valid() {
		fields = append(fields, apperr.Field("kind", "must be income or expense"))
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid quick template", fields...)
	}

	cat, err := s.categories.Get(ctx, params.CategoryID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.InvalidField("category_id", "category does not exist")
		}

		return err
	}

	if string(cat.Kind) != string(params.Kind) {
		return apperr.InvalidField("kind", "must match the category kind")
	}

	t.Name = name
	t.Description = strings.TrimSpace(params.Description)
	t.Amount = params.Amount.Round(2)
	t.Kind = params.Kind
	t.CategoryID = cat.ID
	t.CategoryName = cat.Name
	t.AccountID = params.AccountID

	return nil
}
