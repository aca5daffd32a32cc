package matching

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/finanzas/internal/apperr"
	"github.com/MrJamesThe3rd/finanzas/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, rawDescription string) (*Rule, error)
	CreateRule(ctx context.Context, r *Rule) error
	ListRules(ctx context.Context) ([]*Rule, error)
	DeleteRule(ctx context.Context, id int64) error
}

type Categories interface {
	Get(ctx context.Context, id int64) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories Categories
}

func NewService(repo Repository, categories Categories) *Service {
	return &Service{repo: repo, categories: categories}
}

// Suggest returns the rule with the longest pattern contained in
// rawDescription, or nil when none matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (*Rule, error) {
	raw := strings.TrimSpace(rawDescription)
	if raw == "" {
		return nil, nil
	}

	return s.repo.FindMatch(ctx, raw)
}

type LearnParams struct {
	Pattern     string
	Description string
	CategoryID  *int64
}

// Learn remembers a new rule. It needs a description, a category or both.
func (s *Service) Learn(ctx context.Context, params LearnParams) (*Rule, error) {
	r := &Rule{
		Pattern:     strings.TrimSpace(params.Pattern),
		Description: strings.TrimSpace(params.Description),
		CategoryID:  params.CategoryID,
	}

	var fields []apperr.FieldError

	if utf8.RuneCountInString(r.Pattern) < minPatternLen {
		fields = append(fields, apperr.Field("pattern", fmt.Sprintf("must have at least %d characters", minPatternLen)))
	}

	if r.Description == "" && r.CategoryID == nil {
		fields = append(fields, apperr.Field("description", "is required when no category is given"))
	}

	if len(fields) > 0 {
		return nil, apperr.Validation("invalid description rule", fields...)
	}

	if r.CategoryID != nil {
		c, err := s.categories.Get(ctx, *r.CategoryID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.InvalidField("category_id", "does not exist")
			}

			return nil, err
		}

		if !c.Kind.Postable() {
			return nil, apperr.InvalidField("category_id", "must be an income or expense category")
		}

		r.CategoryName = c.Name
	}

	if err := s.repo.CreateRule(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteRule(ctx, id)
}
