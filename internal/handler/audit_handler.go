package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-routes/api/internal/dto"
	middlewarepkg "github.com/octobees/sales-routes/api/internal/middleware"
	"github.com/octobees/sales-routes/api/internal/service"
)

// AuditHandler exposes the audit log ingestion and listing endpoints.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs an AuditHandler.
func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// Create handles POST /logs requests. An authenticated caller fills a blank userId and userName.
func (h *AuditHandler) Create(c echo.Context) error {
	var req dto.AuditLogRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if id, ok := middlewarepkg.IdentityFromContext(c); ok {
		if strings.TrimSpace(req.UserID) == "" {
			req.UserID = id.UserID
		}
		if strings.TrimSpace(req.UserName) == "" {
			req.UserName = id.Name
		}
	}

	log, err := h.service.Record(c.Request().Context(), req)
	if err != nil {
		var valErr service.AuditValidationError
		if errors.As(err, &valErr) {
			return Error(c, http.StatusBadRequest, valErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "failed to store log")
	}

	return Success(c, http.StatusCreated, "log stored", log)
}

// List handles GET /logs requests.
func (h *AuditHandler) List(c echo.Context) error {
	filter := dto.AuditLogFilter{
		Category: strings.TrimSpace(c.QueryParam("category")),
		UserID:   strings.TrimSpace(c.QueryParam("user_id")),
		Start:    strings.TrimSpace(c.QueryParam("start")),
		End:      strings.TrimSpace(c.QueryParam("end")),
		Limit:    parseIntDefault(c.QueryParam("limit"), 0),
	}

	logs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list logs")
	}

	return List(c, "logs retrieved", logs)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
