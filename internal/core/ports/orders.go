package ports

import (
	"context"
	"time"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	FindByID(ctx context.Context, id, userID string) (*domain.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error)
	Insert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	Delete(ctx context.Context, id, userID string) error
	Clear(ctx context.Context, userID string) error
}

// CartLine is a cart item joined with its current product view.
type CartLine struct {
	Item     *domain.CartItem `json:"item"`
	Product  *domain.Product  `json:"product"`
	Subtotal float64          `json:"subtotal"`
}

// CartView is the assembled cart returned to the client.
type CartView struct {
	Lines []CartLine `json:"items"`
	Total float64    `json:"total"`
}

// CartService defines cart use-cases. All operations are scoped to the
// calling user.
type CartService interface {
	Get(ctx context.Context, userID string) (*CartView, error)
	// Add puts quantity units of the product in the cart, merging with
	// an existing line for the same product.
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderFilter carries query parameters for order listings.
type OrderFilter struct {
	UserID string // empty = all users (admin)
	Status string
	Page   int // 1-based
	Limit  int
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	// FindByID retrieves an order. When userID is non-empty the query
	// is additionally scoped to that user.
	FindByID(ctx context.Context, id, userID string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) error
	Delete(ctx context.Context, id string) error
	// Totals returns the revenue over non-cancelled orders and the
	// total order count.
	Totals(ctx context.Context) (float64, int64, error)
	Recent(ctx context.Context, limit int) ([]*domain.Order, error)
}

// PlaceOrderInput carries a checkout request. The order is built from
// the user's current cart.
type PlaceOrderInput struct {
	UserID          string
	ShippingAddress domain.Address
}

// OrderService defines order use-cases for both customers and admins.
type OrderService interface {
	Place(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	// Get scopes to userID when non-empty (customer view).
	Get(ctx context.Context, id, userID string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int64, error)
	// Cancel is the customer-facing path: only pending orders qualify
	// and reserved stock is returned.
	Cancel(ctx context.Context, id, userID string) (*domain.Order, error)
	// UpdateStatus is the admin path, constrained by the order status
	// state machine.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// WishlistRepository defines persistence operations for wishlist items.
type WishlistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.WishlistItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*domain.WishlistItem, error)
	Insert(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error)
	Delete(ctx context.Context, id, userID string) error
}

// WishlistEntry is a wishlist item joined with its product view.
type WishlistEntry struct {
	Item    *domain.WishlistItem `json:"item"`
	Product *domain.Product      `json:"product"`
}

// WishlistService defines wishlist use-cases.
type WishlistService interface {
	List(ctx context.Context, userID string) ([]WishlistEntry, error)
	Add(ctx context.Context, userID, productID string) (*domain.WishlistItem, error)
	Remove(ctx context.Context, userID, itemID string) error
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) error
}

// ContactService accepts public contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, msg domain.ContactMessage) error
}
