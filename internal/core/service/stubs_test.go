package service

import (
	"context"
	"strconv"
	"time"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// --- Product repository stub ---

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) add(p domain.Product) *domain.Product {
	r.nextID++
	p.ID = "p-" + strconv.Itoa(r.nextID)
	r.products[p.ID] = &p
	return &p
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return r.add(*p), nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(context.Context, ports.ProductFilter) ([]*domain.Product, int64, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) SetActive(_ context.Context, id string, active bool) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsActive = active
	return nil
}

func (r *stubProductRepo) BulkPatch(context.Context, []string, ports.ProductPatch) (int64, error) {
	return 0, nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id string, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) IncrementSold(_ context.Context, id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.SoldCount += qty
	return nil
}

func (r *stubProductRepo) Popular(context.Context, int) ([]*domain.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

// --- Cart repository stub ---

type stubCartRepo struct {
	items  map[string]*domain.CartItem
	nextID int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: make(map[string]*domain.CartItem)}
}

func cloneCartItem(i *domain.CartItem) *domain.CartItem {
	clone := *i
	return &clone
}

func (r *stubCartRepo) ListByUser(_ context.Context, userID string) ([]*domain.CartItem, error) {
	var out []*domain.CartItem
	for _, i := range r.items {
		if i.UserID == userID {
			out = append(out, cloneCartItem(i))
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id, userID string) (*domain.CartItem, error) {
	i, ok := r.items[id]
	if !ok || i.UserID != userID {
		return nil, domain.ErrCartItemNotFound
	}
	return cloneCartItem(i), nil
}

func (r *stubCartRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (*domain.CartItem, error) {
	for _, i := range r.items {
		if i.UserID == userID && i.ProductID == productID {
			return cloneCartItem(i), nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *stubCartRepo) Insert(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	r.nextID++
	created := cloneCartItem(item)
	created.ID = "c-" + strconv.Itoa(r.nextID)
	r.items[created.ID] = cloneCartItem(created)
	return created, nil
}

func (r *stubCartRepo) UpdateQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	i, ok := r.items[id]
	if !ok {
		return domain.ErrCartItemNotFound
	}
	i.Quantity = quantity
	i.UpdatedAt = at
	return nil
}

func (r *stubCartRepo) Delete(_ context.Context, id, userID string) error {
	i, ok := r.items[id]
	if !ok || i.UserID != userID {
		return domain.ErrCartItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubCartRepo) Clear(_ context.Context, userID string) error {
	for id, i := range r.items {
		if i.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

// --- Order repository stub ---

type stubOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.OrderItem(nil), o.Items...)
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	created := cloneOrder(o)
	created.ID = "o-" + strconv.Itoa(r.nextID)
	r.orders[created.ID] = cloneOrder(created)
	return created, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, userID string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || (userID != "" && o.UserID != userID) {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, filter ports.OrderFilter) ([]*domain.Order, int64, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, at time.Time) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) Totals(context.Context) (float64, int64, error) {
	var revenue float64
	for _, o := range r.orders {
		if o.Status != domain.OrderCancelled {
			revenue += o.Total
		}
	}
	return revenue, int64(len(r.orders)), nil
}

func (r *stubOrderRepo) Recent(context.Context, int) ([]*domain.Order, error) {
	return nil, nil
}

// --- Category repository stub ---

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) add(c domain.Category) *domain.Category {
	r.nextID++
	c.ID = "cat-" + strconv.Itoa(r.nextID)
	r.categories[c.ID] = &c
	return &c
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	return r.add(*c), nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return cloneCategory(c), nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context, onlyActive bool) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if onlyActive && !c.IsActive {
			continue
		}
		out = append(out, cloneCategory(c))
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) UpdateSortOrder(_ context.Context, orders []ports.CategorySortOrder) error {
	for _, o := range orders {
		if c, ok := r.categories[o.ID]; ok {
			c.SortOrder = o.SortOrder
		}
	}
	return nil
}
