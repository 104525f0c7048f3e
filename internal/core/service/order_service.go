package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// OrderService implements checkout and order management.
type OrderService struct {
	repo     ports.OrderRepository
	cart     ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, cart ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, cart: cart, products: products, log: log}
}

// Place turns the user's current cart into an order. Prices are
// snapshotted at checkout time, stock is reserved per line, and the
// cart is cleared afterwards.
func (s *OrderService) Place(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	items, err := s.cart.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	order := &domain.Order{
		Number:          generateOrderNumber(),
		UserID:          input.UserID,
		Status:          domain.OrderPending,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var reserved []domain.OrderItem
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			s.release(ctx, reserved)
			return nil, err
		}
		if err := s.products.AdjustStock(ctx, product.ID, -item.Quantity); err != nil {
			s.release(ctx, reserved)
			return nil, err
		}
		line := domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		}
		reserved = append(reserved, line)
		order.Items = append(order.Items, line)
		order.Total += product.Price * float64(item.Quantity)
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	for _, line := range created.Items {
		if err := s.products.IncrementSold(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.Warn().Err(err).Str("product_id", line.ProductID).Msg("failed to bump sold count")
		}
	}

	if err := s.cart.Clear(ctx, input.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", input.UserID).Msg("failed to clear cart after checkout")
	}

	s.log.Info().Str("order", created.Number).Str("user_id", input.UserID).Float64("total", created.Total).Msg("order placed")
	return created, nil
}

// release returns already-reserved stock when checkout aborts midway.
func (s *OrderService) release(ctx context.Context, reserved []domain.OrderItem) {
	for _, line := range reserved {
		if err := s.products.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
			s.log.Error().Err(err).Str("product_id", line.ProductID).Msg("failed to release reserved stock")
		}
	}
}

func (s *OrderService) Get(ctx context.Context, id, userID string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *OrderService) List(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// Cancel is the customer path: only pending orders can be cancelled and
// their stock goes back to the catalog.
func (s *OrderService) Cancel(ctx context.Context, id, userID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderPending {
		return nil, domain.ErrOrderNotCancellable
	}
	return s.transition(ctx, order, domain.OrderCancelled)
}

// UpdateStatus is the admin path, constrained by the state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}
	return s.transition(ctx, order, status)
}

func (s *OrderService) transition(ctx context.Context, order *domain.Order, status domain.OrderStatus) (*domain.Order, error) {
	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, order.ID, status, now); err != nil {
		return nil, err
	}

	if status == domain.OrderCancelled {
		for _, line := range order.Items {
			if err := s.products.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				s.log.Warn().Err(err).Str("product_id", line.ProductID).Msg("failed to restore stock on cancel")
			}
		}
	}

	order.Status = status
	order.UpdatedAt = now
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// generateOrderNumber derives a short upper-case order number from a
// fresh UUID.
func generateOrderNumber() string {
	id := uuid.New().String()
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id[:13], "-", ""))
}
