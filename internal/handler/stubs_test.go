package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/sales-routes/api/internal/dto"
	"github.com/octobees/sales-routes/api/internal/entity"
	"github.com/octobees/sales-routes/api/internal/repository"
)

type resolverStub struct {
	record   *entity.RegistryRecord
	items    []json.RawMessage
	lastText string
	lastUF   string
}

func (s *resolverStub) Resolve(ctx context.Context, id string) (*entity.RegistryRecord, error) {
	return s.record, nil
}

func (s *resolverStub) SearchByAddress(ctx context.Context, filterText, state string) []json.RawMessage {
	s.lastText = filterText
	s.lastUF = state
	return s.items
}

type auditRepoStub struct {
	logs       []entity.AuditLog
	lastFilter dto.AuditLogFilter
	err        error
}

func (s *auditRepoStub) Insert(ctx context.Context, log *entity.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	log.ID = uuid.New()
	log.CreatedAt = time.Now()
	s.logs = append(s.logs, *log)
	return nil
}

func (s *auditRepoStub) List(ctx context.Context, filter dto.AuditLogFilter) ([]entity.AuditLog, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.logs, nil
}

type settingsRepoStub struct {
	values map[string]string
	err    error
}

func (s *settingsRepoStub) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return value, nil
}

func (s *settingsRepoStub) Set(ctx context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}
