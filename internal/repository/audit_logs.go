package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/sales-routes/api/internal/dto"
	"github.com/octobees/sales-routes/api/internal/entity"
)

const maxAuditLogs = 500

// AuditLogsRepository describes persistence operations for audit logs.
type AuditLogsRepository interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, filter dto.AuditLogFilter) ([]entity.AuditLog, error)
}

// PGXAuditLogsRepository implements AuditLogsRepository using pgx.
type PGXAuditLogsRepository struct {
	pool pgxPool
}

// NewPGXAuditLogsRepository wires a pgx backed repository.
func NewPGXAuditLogsRepository(pool *pgxpool.Pool) *PGXAuditLogsRepository {
	return &PGXAuditLogsRepository{pool: pool}
}

// Insert appends a log row and fills in the generated id and timestamp.
func (r *PGXAuditLogsRepository) Insert(ctx context.Context, log *entity.AuditLog) error {
	if log == nil {
		return fmt.Errorf("audit log payload is nil")
	}

	details := log.Details
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO audit_logs (action, user_id, user_name, category, details)
        VALUES ($1, $2, $3, $4, $5::jsonb)
        RETURNING id, created_at
    `, log.Action, log.UserID, log.UserName, log.Category, string(details))

	if err := row.Scan(&log.ID, &log.CreatedAt); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	log.Details = details
	return nil
}

// List returns the most recent logs matching category, user and created_at bounds, newest first.
func (r *PGXAuditLogsRepository) List(ctx context.Context, filter dto.AuditLogFilter) ([]entity.AuditLog, error) {
	query := strings.Builder{}
	query.WriteString(`
        SELECT id, action, user_id, user_name, category, details, created_at
        FROM audit_logs
    `)

	var (
		clauses []string
		args    []any
		idx     = 1
	)
	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(category) = LOWER($%d)", idx))
		args = append(args, filter.Category)
		idx++
	}
	if filter.UserID != "" {
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", idx))
		args = append(args, filter.UserID)
		idx++
	}
	if filter.From != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *filter.To)
		idx++
	}
	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxAuditLogs {
		limit = maxAuditLogs
	}
	query.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", idx))
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	return scanAuditLogs(rows)
}

func scanAuditLogs(rows pgx.Rows) ([]entity.AuditLog, error) {
	logs := []entity.AuditLog{}
	for rows.Next() {
		var (
			log      entity.AuditLog
			userName sql.NullString
			details  []byte
		)
		if err := rows.Scan(&log.ID, &log.Action, &log.UserID, &userName, &log.Category, &details, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if userName.Valid {
			val := userName.String
			log.UserName = &val
		}
		if len(details) > 0 {
			log.Details = json.RawMessage(details)
		} else {
			log.Details = json.RawMessage("{}")
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, nil
}
