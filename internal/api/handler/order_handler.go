package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/api/metrics"
	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// OrderHandler serves both the customer order endpoints and the admin
// order management console.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type placeOrderRequest struct {
	ShippingAddress struct {
		Street     string `json:"street" validate:"required"`
		City       string `json:"city" validate:"required"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code" validate:"required"`
		Country    string `json:"country" validate:"required"`
	} `json:"shipping_address"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped completed cancelled"`
}

func orderFilterFromQuery(c echo.Context) ports.OrderFilter {
	filter := ports.OrderFilter{
		Status: c.QueryParam("status"),
	}
	filter.Page, filter.Limit = pageFromQuery(c)
	return filter
}

// Place handles POST /orders: checkout of the current cart.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Shipping address"
// @Success      201   {object}  domain.Order
// @Failure      422   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.Place(c.Request().Context(), ports.PlaceOrderInput{
		UserID: record.UserID,
		ShippingAddress: domain.Address{
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
	})
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.Inc()

	return c.JSON(http.StatusCreated, order)
}

// List handles GET /orders: the caller's own orders.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	filter := orderFilterFromQuery(c)
	filter.UserID = record.UserID
	orders, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  orders,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Get handles GET /orders/:id, scoped to the caller.
//
// @Summary      Get an own order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), c.Param("id"), record.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Cancel handles POST /orders/:id/cancel. Only pending orders qualify.
//
// @Summary      Cancel an own order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	order, err := h.service.Cancel(c.Request().Context(), c.Param("id"), record.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList handles GET /admin/orders across all users.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c echo.Context) error {
	filter := orderFilterFromQuery(c)
	orders, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  orders,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// AdminGet handles GET /admin/orders/:id without user scoping.
//
// @Summary      Get any order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) AdminGet(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /admin/orders/:id/status, constrained by
// the order status state machine.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order ID"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminDelete handles DELETE /admin/orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/orders/{id} [delete]
func (h *OrderHandler) AdminDelete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted"})
}
