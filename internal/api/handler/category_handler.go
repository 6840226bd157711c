package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handyman/marketplace-api/internal/core/ports"
)

// CategoryHandler serves the service catalog.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// Categories handles GET /v1/categories.
//
// @Summary      List service categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.ServiceCategory
// @Router       /v1/categories [get]
func (h *CategoryHandler) Categories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Services handles GET /v1/services.
//
// @Summary      List all services
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Service
// @Router       /v1/services [get]
func (h *CategoryHandler) Services(c echo.Context) error {
	services, err := h.service.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// Service handles GET /v1/services/:id.
//
// @Summary      Get a service by id
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  errorResponse
// @Router       /v1/services/{id} [get]
func (h *CategoryHandler) Service(c echo.Context) error {
	svc, err := h.service.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}
