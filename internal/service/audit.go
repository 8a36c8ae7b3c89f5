package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/octobees/sales-routes/api/internal/datefmt"
	"github.com/octobees/sales-routes/api/internal/dto"
	"github.com/octobees/sales-routes/api/internal/entity"
	"github.com/octobees/sales-routes/api/internal/repository"
)

// AuditValidationError indicates that an audit log payload is incomplete.
type AuditValidationError struct {
	Message string
}

// Error implements the error interface.
func (e AuditValidationError) Error() string {
	return e.Message
}

// AuditService records and lists frontend audit logs.
type AuditService struct {
	repo repository.AuditLogsRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo repository.AuditLogsRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record validates req and stores it.
func (s *AuditService) Record(ctx context.Context, req dto.AuditLogRequest) (*entity.AuditLog, error) {
	log := &entity.AuditLog{
		Action:   strings.TrimSpace(req.Action),
		UserID:   strings.TrimSpace(req.UserID),
		Category: strings.TrimSpace(req.Category),
		UserName: normalizeString(req.UserName),
		Details:  req.Details,
	}

	var missing []string
	if log.Action == "" {
		missing = append(missing, "action")
	}
	if log.UserID == "" {
		missing = append(missing, "userId")
	}
	if log.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, AuditValidationError{Message: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))}
	}
	if len(log.Details) > 0 && !json.Valid(log.Details) {
		return nil, AuditValidationError{Message: "details must be valid JSON"}
	}

	if err := s.repo.Insert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// List returns logs matching filter. Start and End bound whole local days and
// are applied by the repository ahead of its row limit; unparseable bounds are ignored.
func (s *AuditService) List(ctx context.Context, filter dto.AuditLogFilter) ([]entity.AuditLog, error) {
	filter.From, filter.To = nil, nil
	if start, ok := datefmt.Parse(filter.Start); ok {
		from := datefmt.StartOfDay(start)
		filter.From = &from
	}
	if end, ok := datefmt.Parse(filter.End); ok {
		to := datefmt.EndOfDay(end)
		filter.To = &to
	}

	return s.repo.List(ctx, filter)
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
