package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// CartService implements the customer cart.
type CartService struct {
	repo     ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(repo ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, products: products, log: log}
}

// Get assembles the cart with current product data. Lines whose product
// has been removed from the catalog are silently dropped from the view.
func (s *CartService) Get(ctx context.Context, userID string) (*ports.CartView, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ports.CartView{Lines: make([]ports.CartLine, 0, len(items))}
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		subtotal := product.Price * float64(item.Quantity)
		view.Lines = append(view.Lines, ports.CartLine{Item: item, Product: product, Subtotal: subtotal})
		view.Total += subtotal
	}
	return view, nil
}

func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrProductNotFound
	}

	existing, err := s.repo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && !errors.Is(err, domain.ErrCartItemNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	if existing != nil {
		quantity += existing.Quantity
	}
	if quantity > product.Stock {
		return nil, domain.ErrInsufficientStock
	}

	if existing != nil {
		if err := s.repo.UpdateQuantity(ctx, existing.ID, quantity, now); err != nil {
			return nil, err
		}
		existing.Quantity = quantity
		existing.UpdatedAt = now
		return existing, nil
	}

	return s.repo.Insert(ctx, &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error) {
	item, err := s.repo.FindByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateQuantity(ctx, item.ID, quantity, now); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	item.UpdatedAt = now
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	return s.repo.Delete(ctx, itemID, userID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}
