package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// WishlistHandler serves the customer's wishlist.
type WishlistHandler struct {
	service ports.WishlistService
}

func NewWishlistHandler(service ports.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

type addToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// List handles GET /wishlist.
//
// @Summary      View the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.WishlistEntry
// @Failure      401  {object}  errorResponse
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	entries, err := h.service.List(c.Request().Context(), record.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Add handles POST /wishlist/add.
//
// @Summary      Add a product to the wishlist
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToWishlistRequest  true  "Product"
// @Success      201   {object}  domain.WishlistItem
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /wishlist/add [post]
func (h *WishlistHandler) Add(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addToWishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Add(c.Request().Context(), record.UserID, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Remove handles DELETE /wishlist/:id.
//
// @Summary      Remove a wishlist item
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Wishlist item ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /wishlist/{id} [delete]
func (h *WishlistHandler) Remove(c echo.Context) error {
	record, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), record.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item removed"})
}
