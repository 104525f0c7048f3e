package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

const defaultShowcaseLimit = 8

// ProductService implements catalog use-cases for products.
type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, log: log}
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if input.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}
	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrDuplicateSlug
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	active, featured := true, false
	if input.IsActive != nil {
		active = *input.IsActive
	}
	if input.IsFeatured != nil {
		featured = *input.IsFeatured
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
		IsActive:    active,
		IsFeatured:  featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Slug != "" && input.Slug != p.Slug {
		if _, err := s.repo.FindBySlug(ctx, input.Slug); err == nil {
			return nil, domain.ErrDuplicateSlug
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		p.Slug = input.Slug
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.Price > 0 {
		p.Price = input.Price
	}
	if input.Stock >= 0 {
		p.Stock = input.Stock
	}
	if input.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = input.CategoryID
	}
	if input.Images != nil {
		p.Images = input.Images
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		p.IsFeatured = *input.IsFeatured
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) ToggleStatus(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsActive = !p.IsActive
	if err := s.repo.SetActive(ctx, id, p.IsActive); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) BulkUpdate(ctx context.Context, ids []string, patch ports.ProductPatch) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.repo.BulkPatch(ctx, ids, patch)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("requested", len(ids)).Int64("modified", n).Msg("bulk product update")
	return n, nil
}

func (s *ProductService) Featured(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit < 1 || limit > 50 {
		limit = defaultShowcaseLimit
	}
	active, featured := true, true
	items, _, err := s.repo.List(ctx, ports.ProductFilter{
		IsActive:   &active,
		IsFeatured: &featured,
		Page:       1,
		Limit:      limit,
	})
	return items, err
}

func (s *ProductService) Popular(ctx context.Context, limit int) ([]*domain.Product, error) {
	if limit < 1 || limit > 50 {
		limit = defaultShowcaseLimit
	}
	return s.repo.Popular(ctx, limit)
}

// slugify lowercases the name and collapses anything that is not a
// letter or digit into single dashes.
func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
