package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

const recentOrdersLimit = 5

// DashboardService computes the admin dashboard numbers from the live
// collections instead of serving canned figures.
type DashboardService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewDashboardService(orders ports.OrderRepository, products ports.ProductRepository, users ports.UserRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{orders: orders, products: products, users: users, log: log}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	revenue, orderCount, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}

	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.orders.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		TotalRevenue:  revenue,
		TotalOrders:   orderCount,
		TotalProducts: productCount,
		ActiveUsers:   activeUsers,
		RecentOrders:  make([]ports.RecentOrder, 0, len(recent)),
	}

	for _, order := range recent {
		customer := ""
		user, err := s.users.FindByID(ctx, order.UserID)
		switch {
		case err == nil:
			customer = user.Name
		case errors.Is(err, domain.ErrUserNotFound):
			// deleted account; keep the order row with a blank name
		default:
			return nil, err
		}
		stats.RecentOrders = append(stats.RecentOrders, ports.RecentOrder{
			Number:   order.Number,
			Customer: customer,
			Date:     order.CreatedAt.UTC().Format("2006-01-02"),
			Status:   order.Status,
			Total:    order.Total,
		})
	}

	return stats, nil
}
