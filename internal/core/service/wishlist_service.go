package service

import (
	"context"
	"errors"
	"time"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// WishlistService implements the customer wishlist.
type WishlistService struct {
	repo     ports.WishlistRepository
	products ports.ProductRepository
}

func NewWishlistService(repo ports.WishlistRepository, products ports.ProductRepository) *WishlistService {
	return &WishlistService{repo: repo, products: products}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]ports.WishlistEntry, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.WishlistEntry, 0, len(items))
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, ports.WishlistEntry{Item: item, Product: product})
	}
	return entries, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserAndProduct(ctx, userID, productID); err == nil {
		return nil, domain.ErrWishlistDuplicate
	} else if !errors.Is(err, domain.ErrWishlistItemNotFound) {
		return nil, err
	}

	return s.repo.Insert(ctx, &domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *WishlistService) Remove(ctx context.Context, userID, itemID string) error {
	return s.repo.Delete(ctx, itemID, userID)
}
