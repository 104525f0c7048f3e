package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// ProductHandler serves both the admin catalog endpoints and the public
// showcase listings.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /admin/products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        search       query     string  false  "Partial match on name or slug"
// @Param        category_id  query     string  false  "Filter by category"
// @Param        is_active    query     bool    false  "Filter by active flag"
// @Param        page         query     int     false  "Page number (1-based)"
// @Param        limit        query     int     false  "Page size"
// @Success      200          {object}  listResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /admin/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := productFilterFromQuery(c)
	products, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  products,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Get handles GET /admin/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /admin/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /admin/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /admin/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product deleted"})
}

// ToggleStatus handles POST /admin/products/:id/toggle-status.
//
// @Summary      Toggle a product's active flag
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /admin/products/{id}/toggle-status [post]
func (h *ProductHandler) ToggleStatus(c echo.Context) error {
	product, err := h.service.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// BulkUpdate handles POST /admin/products/bulk-update.
//
// @Summary      Apply a partial update to many products
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkUpdateRequest  true  "Product IDs and patch"
// @Success      200   {object}  bulkUpdateResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/products/bulk-update [post]
func (h *ProductHandler) BulkUpdate(c echo.Context) error {
	var req bulkUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	updated, err := h.service.BulkUpdate(c.Request().Context(), req.IDs, ports.ProductPatch{
		Price:      req.Patch.Price,
		Stock:      req.Patch.Stock,
		CategoryID: req.Patch.CategoryID,
		IsActive:   req.Patch.IsActive,
		IsFeatured: req.Patch.IsFeatured,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bulkUpdateResponse{Updated: updated})
}

// Storefront handles GET /products, the catalog browse for signed-in
// shoppers. Inactive products never show up here regardless of the
// query string.
//
// @Summary      Browse the catalog
// @Tags         storefront
// @Produce      json
// @Security     BearerAuth
// @Param        search       query     string  false  "Partial match on name or slug"
// @Param        category_id  query     string  false  "Filter by category"
// @Param        page         query     int     false  "Page number (1-based)"
// @Param        limit        query     int     false  "Page size"
// @Success      200          {object}  listResponse
// @Failure      401          {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) Storefront(c echo.Context) error {
	filter := productFilterFromQuery(c)
	active := true
	filter.IsActive = &active
	products, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  products,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Search handles GET /products/search/query.
//
// @Summary      Search the catalog
// @Tags         storefront
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  true   "Search term"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  listResponse
// @Failure      401    {object}  errorResponse
// @Router       /products/search/query [get]
func (h *ProductHandler) Search(c echo.Context) error {
	filter := productFilterFromQuery(c)
	filter.Search = c.QueryParam("q")
	active := true
	filter.IsActive = &active
	products, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  products,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Featured handles GET /public/products/featured, the storefront strip.
//
// @Summary      Featured products
// @Tags         storefront
// @Produce      json
// @Param        limit  query     int  false  "Maximum results"
// @Success      200    {array}   domain.Product
// @Router       /public/products/featured [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	products, err := h.service.Featured(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Popular handles GET /public/products/popular, ordered by units sold.
//
// @Summary      Popular products
// @Tags         storefront
// @Produce      json
// @Param        limit  query     int  false  "Maximum results"
// @Success      200    {array}   domain.Product
// @Router       /public/products/popular [get]
func (h *ProductHandler) Popular(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	products, err := h.service.Popular(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
