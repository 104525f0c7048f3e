package ports

import (
	"context"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
)

// AuditRecorder accepts audit events from request handlers without
// blocking them; delivery is asynchronous and best-effort.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService persists a single audit event. It runs on the worker
// side of the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository handles audit trail persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// RecentOrder is the dashboard's condensed order view.
type RecentOrder struct {
	Number   string             `json:"id"`
	Customer string             `json:"customer"`
	Date     string             `json:"date"`
	Status   domain.OrderStatus `json:"status"`
	Total    float64            `json:"total"`
}

// DashboardStats aggregates the admin dashboard headline numbers.
type DashboardStats struct {
	TotalRevenue  float64       `json:"total_revenue"`
	TotalOrders   int64         `json:"total_orders"`
	TotalProducts int64         `json:"total_products"`
	ActiveUsers   int64         `json:"active_users"`
	RecentOrders  []RecentOrder `json:"recent_orders"`
}

// DashboardService computes admin dashboard statistics.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}
