package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// CategoryService implements catalog use-cases for categories.
type CategoryService struct {
	repo     ports.CategoryRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, products ports.ProductRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, products: products, log: log}
}

func (s *CategoryService) List(ctx context.Context, includeInactive bool) ([]*domain.Category, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	slug := input.Slug
	if slug == "" {
		slug = slugify(input.Name)
	}
	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, domain.ErrDuplicateSlug
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, err
	}

	if input.ParentID != "" {
		if _, err := s.repo.FindByID(ctx, input.ParentID); err != nil {
			return nil, err
		}
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Category{
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		ParentID:    input.ParentID,
		SortOrder:   input.SortOrder,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CategoryService) Update(ctx context.Context, id string, input ports.CategoryInput) (*domain.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		c.Name = input.Name
	}
	if input.Slug != "" && input.Slug != c.Slug {
		if _, err := s.repo.FindBySlug(ctx, input.Slug); err == nil {
			return nil, domain.ErrDuplicateSlug
		} else if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		c.Slug = input.Slug
	}
	if input.Description != "" {
		c.Description = input.Description
	}
	if input.ParentID != "" && input.ParentID != c.ID {
		if _, err := s.repo.FindByID(ctx, input.ParentID); err != nil {
			return nil, err
		}
		c.ParentID = input.ParentID
	}
	if input.SortOrder != 0 {
		c.SortOrder = input.SortOrder
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Tree assembles the category hierarchy from parent_id references.
// Orphaned nodes (dangling parent_id) surface as roots rather than
// disappearing.
func (s *CategoryService) Tree(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*domain.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &domain.CategoryNode{Category: *c}
	}

	var roots []*domain.CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if parent, ok := nodes[c.ParentID]; ok && c.ParentID != c.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	sortNodes(roots)
	return roots, nil
}

func sortNodes(nodes []*domain.CategoryNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

func (s *CategoryService) SelectOptions(ctx context.Context) ([]ports.CategoryOption, error) {
	categories, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	options := make([]ports.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, ports.CategoryOption{ID: c.ID, Name: c.Name})
	}
	return options, nil
}

func (s *CategoryService) UpdateSortOrder(ctx context.Context, orders []ports.CategorySortOrder) error {
	if len(orders) == 0 {
		return nil
	}
	return s.repo.UpdateSortOrder(ctx, orders)
}

func (s *CategoryService) Products(ctx context.Context, categoryID string, page, limit int) ([]*domain.Product, int64, error) {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	active := true
	return s.products.List(ctx, ports.ProductFilter{
		CategoryID: categoryID,
		IsActive:   &active,
		Page:       page,
		Limit:      limit,
	})
}
