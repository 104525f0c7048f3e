package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

type productRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
}

type bulkUpdateRequest struct {
	IDs   []string `json:"ids" validate:"required,min=1"`
	Patch struct {
		Price      *float64 `json:"price" validate:"omitempty,gt=0"`
		Stock      *int     `json:"stock" validate:"omitempty,gte=0"`
		CategoryID *string  `json:"category_id"`
		IsActive   *bool    `json:"is_active"`
		IsFeatured *bool    `json:"is_featured"`
	} `json:"patch"`
}

type bulkUpdateResponse struct {
	Updated int64 `json:"updated"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
	}
}

// productFilterFromQuery reads the product listing query parameters.
func productFilterFromQuery(c echo.Context) ports.ProductFilter {
	filter := ports.ProductFilter{
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("category_id"),
	}
	filter.Page, filter.Limit = pageFromQuery(c)
	if v := c.QueryParam("is_active"); v != "" {
		active := v == "true" || v == "1"
		filter.IsActive = &active
	}
	if v := c.QueryParam("is_featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.IsFeatured = &featured
	}
	return filter
}

// pageFromQuery reads the page and limit parameters, applying the same
// bounds the services enforce so the response envelope echoes the
// effective values.
func pageFromQuery(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
