package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id int64) (*Category, error)
	GetSystemCategory(ctx context.Context, name string) (*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	SetActive(ctx context.Context, id int64, active bool) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context, filter ListFilter) ([]*Category, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name           string
	Kind           Kind
	ParentID       *int64
	Icon           string
	Color          string
	Description    string
	ExpenseSubtype *ExpenseSubtype
}

type ListFilter struct {
	Kind     *Kind
	Active   *bool
	ParentID *int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	c := &Category{
		Name:           strings.TrimSpace(params.Name),
		Kind:           params.Kind,
		ParentID:       params.ParentID,
		Icon:           params.Icon,
		Color:          params.Color,
		Description:    params.Description,
		ExpenseSubtype: params.ExpenseSubtype,
		IsActive:       true,
	}

	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Category) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.ParentID != nil && *c.ParentID == c.ID {
		return apperr.InvalidField("parent_id", "a category cannot be its own parent")
	}

	if err := s.validate(ctx, c); err != nil {
		return err
	}

	return s.repo.UpdateCategory(ctx, c)
}

// Deactivate soft-deletes a category. Always allowed.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) Activate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, true)
}

// Delete removes a category nothing references; otherwise ErrInUse.
func (s *Service) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	if c.IsSystem {
		return apperr.Integrity("system categories cannot be deleted")
	}

	return s.repo.DeleteCategory(ctx, id)
}

// EnsureSystem returns the named system category, creating it on first use.
func (s *Service) EnsureSystem(ctx context.Context, name string, kind Kind) (*Category, error) {
	c, err := s.repo.GetSystemCategory(ctx, name)
	if err == nil {
		return c, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get system category: %w", err)
	}

	c = &Category{Name: name, Kind: kind, IsActive: true, IsSystem: true}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		// Lost a creation race: the unique index on system names kept the other row.
		if apperr.Is(err, apperr.KindConflict) {
			return s.repo.GetSystemCategory(ctx, name)
		}

		return nil, fmt.Errorf("create system category: %w", err)
	}

	return c, nil
}

func (s *Service) validate(ctx context.Context, c *Category) error {
	var fields []apperr.FieldError

	if c.Name == "" {
		fields = append(fields, apperr.Field("name", "is required"))
	}

	if !c.Kind.Valid() {
		fields = append(fields, apperr.Field("kind", "must be income, expense or saving"))
	}

	if c.ExpenseSubtype != nil {
		switch {
		case !c.ExpenseSubtype.Valid():
			fields = append(fields, apperr.Field("expense_subtype", "must be fixed or variable"))
		case c.Kind != KindExpense:
			fields = append(fields, apperr.Field("expense_subtype", "only applies to expense categories"))
		}
	}

	if len(fields) > 0 {
		return apperr.Validation("invalid category", fields...)
	}

	if c.ParentID == nil {
		return nil
	}

	parent, err := s.repo.GetCategory(ctx, *c.ParentID)
	if errors.Is(err, ErrNotFound) {
		return apperr.InvalidField("parent_id", "parent category does not exist")
	}

	if err != nil {
		return err
	}

	if parent.Kind != c.Kind {
		return apperr.InvalidField("parent_id", "parent must have the same kind")
	}

	return nil
}
