package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

func orderFixture() (*OrderService, *stubOrderRepo, *stubCartRepo, *stubProductRepo) {
	orders := newStubOrderRepo()
	cart := newStubCartRepo()
	products := newStubProductRepo()
	return NewOrderService(orders, cart, products, zerolog.Nop()), orders, cart, products
}

func TestOrderService_Place(t *testing.T) {
	svc, _, cart, products := orderFixture()

	book := products.add(domain.Product{Name: "Book", Price: 12.50, Stock: 5, IsActive: true})
	pen := products.add(domain.Product{Name: "Pen", Price: 2.00, Stock: 10, IsActive: true})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: book.ID, Quantity: 2})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: pen.ID, Quantity: 3})

	order, err := svc.Place(context.Background(), ports.PlaceOrderInput{
		UserID:          "u-1",
		ShippingAddress: domain.Address{Street: "1 Main St", City: "Metropolis", PostalCode: "12345", Country: "US"},
	})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}

	if !strings.HasPrefix(order.Number, "ORD-") {
		t.Fatalf("unexpected order number %q", order.Number)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("new order not pending: %s", order.Status)
	}
	if order.Total != 2*12.50+3*2.00 {
		t.Fatalf("unexpected total %v", order.Total)
	}

	// Stock reserved, sold count bumped, cart emptied.
	stored, _ := products.FindByID(context.Background(), book.ID)
	if stored.Stock != 3 || stored.SoldCount != 2 {
		t.Fatalf("book stock/sold = %d/%d, want 3/2", stored.Stock, stored.SoldCount)
	}
	remaining, _ := cart.ListByUser(context.Background(), "u-1")
	if len(remaining) != 0 {
		t.Fatalf("cart not cleared after checkout")
	}
}

func TestOrderService_Place_EmptyCart(t *testing.T) {
	svc, _, _, _ := orderFixture()

	if _, err := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u-1"}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

// A line that cannot be reserved aborts checkout and returns the stock
// already taken for earlier lines.
func TestOrderService_Place_InsufficientStockRollsBack(t *testing.T) {
	svc, orders, cart, products := orderFixture()

	book := products.add(domain.Product{Name: "Book", Price: 12.50, Stock: 5, IsActive: true})
	rare := products.add(domain.Product{Name: "Rare", Price: 99.00, Stock: 1, IsActive: true})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: book.ID, Quantity: 2})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: rare.ID, Quantity: 3})

	if _, err := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u-1"}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	stored, _ := products.FindByID(context.Background(), book.ID)
	if stored.Stock != 5 {
		t.Fatalf("reserved stock not released, book stock = %d", stored.Stock)
	}
	if _, total, _ := orders.List(context.Background(), ports.OrderFilter{}); total != 0 {
		t.Fatalf("aborted checkout still created an order")
	}
}

func TestOrderService_Cancel(t *testing.T) {
	svc, orders, cart, products := orderFixture()

	book := products.add(domain.Product{Name: "Book", Price: 12.50, Stock: 5, IsActive: true})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: book.ID, Quantity: 2})

	placed, err := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u-1"})
	if err != nil {
		t.Fatalf("Place returned error: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), placed.ID, "u-1")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != domain.OrderCancelled {
		t.Fatalf("order not cancelled: %s", cancelled.Status)
	}

	stored, _ := products.FindByID(context.Background(), book.ID)
	if stored.Stock != 5 {
		t.Fatalf("stock not restored on cancel, got %d", stored.Stock)
	}

	// Once processing has started the customer path is closed.
	_ = orders.UpdateStatus(context.Background(), placed.ID, domain.OrderProcessing, placed.UpdatedAt)
	if _, err := svc.Cancel(context.Background(), placed.ID, "u-1"); !errors.Is(err, domain.ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
	}
}

func TestOrderService_Cancel_WrongUser(t *testing.T) {
	svc, _, cart, products := orderFixture()

	book := products.add(domain.Product{Name: "Book", Price: 12.50, Stock: 5, IsActive: true})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: book.ID, Quantity: 1})
	placed, _ := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u-1"})

	if _, err := svc.Cancel(context.Background(), placed.ID, "u-2"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestOrderService_UpdateStatus_StateMachine(t *testing.T) {
	svc, _, cart, products := orderFixture()

	book := products.add(domain.Product{Name: "Book", Price: 12.50, Stock: 5, IsActive: true})
	_, _ = cart.Insert(context.Background(), &domain.CartItem{UserID: "u-1", ProductID: book.ID, Quantity: 1})
	placed, _ := svc.Place(context.Background(), ports.PlaceOrderInput{UserID: "u-1"})

	for _, status := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderCompleted} {
		if _, err := svc.UpdateStatus(context.Background(), placed.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(context.Background(), placed.ID, domain.OrderCancelled); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
