package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

func productFixture() (*ProductService, *stubProductRepo, *stubCategoryRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	return NewProductService(products, categories, zerolog.Nop()), products, categories
}

func TestProductService_Create_GeneratesSlug(t *testing.T) {
	svc, _, categories := productFixture()
	cat := categories.add(domain.Category{Name: "Books", Slug: "books", IsActive: true})

	product, err := svc.Create(context.Background(), ports.ProductInput{
		Name:       "The Go Programming Language (2nd ed.)",
		Price:      39.99,
		Stock:      10,
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if product.Slug != "the-go-programming-language-2nd-ed" {
		t.Fatalf("unexpected slug %q", product.Slug)
	}
	if !product.IsActive || product.IsFeatured {
		t.Fatalf("unexpected default flags: active=%v featured=%v", product.IsActive, product.IsFeatured)
	}
}

func TestProductService_Create_DuplicateSlug(t *testing.T) {
	svc, _, categories := productFixture()
	cat := categories.add(domain.Category{Name: "Books", Slug: "books", IsActive: true})

	if _, err := svc.Create(context.Background(), ports.ProductInput{Name: "Widget", Price: 1, CategoryID: cat.ID}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.ProductInput{Name: "Widget", Price: 2, CategoryID: cat.ID}); !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	svc, _, _ := productFixture()

	if _, err := svc.Create(context.Background(), ports.ProductInput{Name: "Widget", Price: 1, CategoryID: "missing"}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestProductService_ToggleStatus(t *testing.T) {
	svc, products, _ := productFixture()
	p := products.add(domain.Product{Name: "Widget", Slug: "widget", IsActive: true})

	toggled, err := svc.ToggleStatus(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("ToggleStatus returned error: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("expected product deactivated")
	}

	stored, _ := products.FindByID(context.Background(), p.ID)
	if stored.IsActive {
		t.Fatalf("toggle not persisted")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Plain", "plain"},
		{"Multi Word Name", "multi-word-name"},
		{"  trims!! punctuation?? ", "trims-punctuation"},
		{"MixedCase123", "mixedcase123"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
