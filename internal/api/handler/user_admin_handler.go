package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// UserAdminHandler serves the admin console's user management endpoints.
type UserAdminHandler struct {
	service ports.UserAdminService
}

func NewUserAdminHandler(service ports.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{service: service}
}

type adminUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=admin customer vendor user"`
	IsActive *bool  `json:"is_active"`
}

func (r adminUserRequest) toInput() ports.AdminUserInput {
	return ports.AdminUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
		Role:     r.Role,
		IsActive: r.IsActive,
	}
}

func userFilterFromQuery(c echo.Context) ports.UserFilter {
	filter := ports.UserFilter{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
	}
	filter.Page, filter.Limit = pageFromQuery(c)
	if v := c.QueryParam("is_active"); v != "" {
		active := v == "true" || v == "1"
		filter.IsActive = &active
	}
	return filter
}

// List handles GET /admin/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Partial match on name or email"
// @Param        role       query     string  false  "Filter by role"
// @Param        is_active  query     bool    false  "Filter by active flag"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listResponse
// @Failure      403        {object}  errorResponse
// @Router       /admin/users [get]
func (h *UserAdminHandler) List(c echo.Context) error {
	filter := userFilterFromQuery(c)
	users, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Data:  users,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
}

// Get handles GET /admin/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [get]
func (h *UserAdminHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /admin/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminUserRequest  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users [post]
func (h *UserAdminHandler) Create(c echo.Context) error {
	var req adminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /admin/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User ID"
// @Param        body  body      adminUserRequest  true  "User details"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/users/{id} [put]
func (h *UserAdminHandler) Update(c echo.Context) error {
	var req adminUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /admin/users/:id. The user's live sessions are
// revoked as part of deletion.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *UserAdminHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// ToggleStatus handles POST /admin/users/:id/toggle-status.
// Deactivation revokes every live session of the user.
//
// @Summary      Toggle a user's active flag
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/toggle-status [post]
func (h *UserAdminHandler) ToggleStatus(c echo.Context) error {
	user, err := h.service.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
