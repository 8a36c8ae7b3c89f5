package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-routes/api/internal/dto"
	"github.com/octobees/sales-routes/api/internal/service"
)

// SettingsHandler manages the registry API key used for CNPJ lookups.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(service *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// UpdateCNPJAKey handles PUT /admin/settings/cnpja-key requests.
func (h *SettingsHandler) UpdateCNPJAKey(c echo.Context) error {
	var req dto.UpdateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetAPIKey(c.Request().Context(), req.APIKey); err != nil {
		if errors.Is(err, service.ErrEmptyAPIKey) {
			return Error(c, http.StatusBadRequest, "api_key is required")
		}
		return Error(c, http.StatusInternalServerError, "failed to store api key")
	}

	return Success(c, http.StatusOK, "api key updated", map[string]any{"configured": true})
}

// CNPJAKeyStatus handles GET /admin/settings/cnpja-key requests.
func (h *SettingsHandler) CNPJAKeyStatus(c echo.Context) error {
	configured := h.service.HasAPIKey(c.Request().Context())
	return Success(c, http.StatusOK, "api key status", map[string]any{"configured": configured})
}
