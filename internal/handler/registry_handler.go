package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-routes/api/internal/cnpj"
	"github.com/octobees/sales-routes/api/internal/dto"
	"github.com/octobees/sales-routes/api/internal/service"
)

// RegistryHandler exposes CNPJ lookup and address search endpoints.
type RegistryHandler struct {
	service *service.RegistryService
}

// NewRegistryHandler creates a new handler instance.
func NewRegistryHandler(service *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

// Resolve handles GET /cnpj/:id requests.
func (h *RegistryHandler) Resolve(c echo.Context) error {
	record, err := h.service.Lookup(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, cnpj.ErrInvalidCNPJ):
			return Error(c, http.StatusBadRequest, "cnpj must have 14 digits")
		case errors.Is(err, service.ErrRecordNotFound):
			return Error(c, http.StatusNotFound, "cnpj not found")
		default:
			return Error(c, http.StatusBadGateway, "registry lookup failed")
		}
	}

	return Success(c, http.StatusOK, "cnpj resolved", record)
}

// Search handles GET /cnpj?q=&state= requests.
func (h *RegistryHandler) Search(c echo.Context) error {
	var req dto.RegistrySearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid query")
	}

	req.Q = strings.TrimSpace(req.Q)
	if req.Q == "" {
		return Error(c, http.StatusBadRequest, "q is required")
	}

	items := h.service.Search(c.Request().Context(), req.Q, req.State)
	return List(c, "search completed", items)
}
