package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// ContactHandler accepts public contact form submissions.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,min=10"`
}

// Submit handles POST /public/contact.
//
// @Summary      Submit a contact message
// @Tags         storefront
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact message"
// @Success      201   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /public/contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Submit(c.Request().Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "message received"})
}
