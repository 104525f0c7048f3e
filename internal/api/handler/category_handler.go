package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// CategoryHandler serves category management and the public tree view.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ParentID    string `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

type sortOrderRequest struct {
	Orders []struct {
		ID        string `json:"id" validate:"required"`
		SortOrder int    `json:"sort_order"`
	} `json:"orders" validate:"required,min=1,dive"`
}

func (r categoryRequest) toInput() ports.CategoryInput {
	return ports.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		ParentID:    r.ParentID,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

// List handles GET /admin/categories. Admins see inactive categories too.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Category
// @Failure      401  {object}  errorResponse
// @Router       /admin/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Get handles GET /admin/categories/:id.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  errorResponse
// @Router       /admin/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create handles POST /admin/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      201   {object}  domain.Category
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /admin/categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category details"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category deleted"})
}

// SelectOptions handles GET /admin/categories/select/options, the
// minimal id/name list backing admin select widgets.
//
// @Summary      Category select options
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CategoryOption
// @Router       /admin/categories/select/options [get]
func (h *CategoryHandler) SelectOptions(c echo.Context) error {
	options, err := h.service.SelectOptions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, options)
}

// UpdateSortOrder handles POST /admin/categories/sort-order/update.
//
// @Summary      Reorder categories
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sortOrderRequest  true  "New sort positions"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/categories/sort-order/update [post]
func (h *CategoryHandler) UpdateSortOrder(c echo.Context) error {
	var req sortOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	orders := make([]ports.CategorySortOrder, 0, len(req.Orders))
	for _, o := range req.Orders {
		orders = append(orders, ports.CategorySortOrder{ID: o.ID, SortOrder: o.SortOrder})
	}
	if err := h.service.UpdateSortOrder(c.Request().Context(), orders); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "sort order updated"})
}

// Tree handles GET /admin/categories/tree/structure, the nested view
// the admin console renders.
//
// @Summary      Category tree
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CategoryNode
// @Router       /admin/categories/tree/structure [get]
func (h *CategoryHandler) Tree(c echo.Context) error {
	tree, err := h.service.Tree(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tree)
}

// PublicList handles GET /categories and GET /public/categories, the
// storefront's flat list of active categories.
//
// @Summary      List active categories
// @Tags         storefront
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /public/categories [get]
func (h *CategoryHandler) PublicList(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Products handles GET /categories/:id/products, listing a category's
// active products.
//
// @Summary      Products in a category
// @Tags         storefront
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Category ID"
// @Param        page   query     int     false  "Page number (1-based)"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  listResponse
// @Failure      404    {object}  errorResponse
// @Router       /categories/{id}/products [get]
func (h *CategoryHandler) Products(c echo.Context) error {
	page, limit := pageFromQuery(c)
	products, total, err := h.service.Products(c.Request().Context(), c.Param("id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  products,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
