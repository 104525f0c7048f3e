package ports

import (
	"context"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// ProductFilter carries all query parameters for product listings.
type ProductFilter struct {
	Search     string // partial match on name or slug
	CategoryID string
	IsActive   *bool // nil = no filter; public listings pin this to true
	IsFeatured *bool
	Page       int // 1-based
	Limit      int // capped at 100 by the service
}

// ProductInput carries the admin create/update payload.
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Stock       int
	CategoryID  string
	Images      []string
	IsActive    *bool
	IsFeatured  *bool
}

// ProductPatch is the partial update applied by bulk operations.
// Nil fields are left untouched.
type ProductPatch struct {
	Price      *float64
	Stock      *int
	CategoryID *string
	IsActive   *bool
	IsFeatured *bool
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	// BulkPatch applies patch to every listed product and returns how
	// many documents were modified.
	BulkPatch(ctx context.Context, ids []string, patch ProductPatch) (int64, error)
	// AdjustStock adds delta (which may be negative) to the product's
	// stock, failing with domain.ErrInsufficientStock when the result
	// would go below zero.
	AdjustStock(ctx context.Context, id string, delta int) error
	IncrementSold(ctx context.Context, id string, qty int) error
	// Popular returns active products ordered by sold_count descending.
	Popular(ctx context.Context, limit int) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

// ProductService defines catalog use-cases for products.
type ProductService interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.Product, error)
	BulkUpdate(ctx context.Context, ids []string, patch ProductPatch) (int64, error)
	Featured(ctx context.Context, limit int) ([]*domain.Product, error)
	Popular(ctx context.Context, limit int) ([]*domain.Product, error)
}

// CategoryInput carries the admin create/update payload.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	ParentID    string
	SortOrder   int
	IsActive    *bool
}

// CategorySortOrder assigns a new sort position to one category.
type CategorySortOrder struct {
	ID        string
	SortOrder int
}

// CategoryOption is the minimal view used by admin select widgets.
type CategoryOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	// List returns categories ordered by sort_order then name.
	List(ctx context.Context, onlyActive bool) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	UpdateSortOrder(ctx context.Context, orders []CategorySortOrder) error
}

// CategoryService defines catalog use-cases for categories.
type CategoryService interface {
	List(ctx context.Context, includeInactive bool) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Tree(ctx context.Context) ([]*domain.CategoryNode, error)
	SelectOptions(ctx context.Context) ([]CategoryOption, error)
	UpdateSortOrder(ctx context.Context, orders []CategorySortOrder) error
	// Products lists the active products belonging to the category.
	Products(ctx context.Context, categoryID string, page, limit int) ([]*domain.Product, int64, error)
}
