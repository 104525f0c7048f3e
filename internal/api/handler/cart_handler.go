package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// CartHandler serves the customer's shopping cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Get handles GET /cart.
//
// @Summary      View the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.CartView
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), record.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Add handles POST /cart/add. Adding a product already in the cart
// merges the quantities.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      201   {object}  domain.CartItem
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Add(c.Request().Context(), record.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateQuantity handles PUT /cart/:id.
//
// @Summary      Change a cart line's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Cart item ID"
// @Param        body  body      updateCartRequest  true  "New quantity"
// @Success      200   {object}  domain.CartItem
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/{id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.UpdateQuantity(c.Request().Context(), record.UserID, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /cart/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), record.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item removed"})
}

// Clear handles DELETE /cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.Clear(c.Request().Context(), record.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cart cleared"})
}
