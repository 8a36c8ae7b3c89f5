package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/sales-routes/api/internal/cnpj"
	"github.com/octobees/sales-routes/api/internal/entity"
)

// ErrRecordNotFound indicates that neither registry could resolve the CNPJ.
var ErrRecordNotFound = errors.New("registry record not found")

// RegistryResolver is implemented by *cnpj.Client.
type RegistryResolver interface {
	Resolve(ctx context.Context, id string) (*entity.RegistryRecord, error)
	SearchByAddress(ctx context.Context, filterText, state string) []json.RawMessage
}

// RegistryService fronts the registry client with caching and metrics.
type RegistryService struct {
	resolver RegistryResolver
	cache    RecordCache
	metrics  *RegistryMetrics
	logger   *zap.Logger
}

// RegistryOption configures optional dependencies.
type RegistryOption func(*RegistryService)

// WithRecordCache enables read-through caching of resolved records.
func WithRecordCache(cache RecordCache) RegistryOption {
	return func(s *RegistryService) {
		s.cache = cache
	}
}

// WithRegistryMetrics records lookup counters.
func WithRegistryMetrics(metrics *RegistryMetrics) RegistryOption {
	return func(s *RegistryService) {
		s.metrics = metrics
	}
}

// WithRegistryLogger overrides the no-op logger.
func WithRegistryLogger(logger *zap.Logger) RegistryOption {
	return func(s *RegistryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(resolver RegistryResolver, opts ...RegistryOption) *RegistryService {
	s := &RegistryService{resolver: resolver, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves id, consulting the cache first. Malformed ids fail with cnpj.ErrInvalidCNPJ
// and an id neither registry knows fails with ErrRecordNotFound.
func (s *RegistryService) Lookup(ctx context.Context, id string) (*entity.RegistryRecord, error) {
	digits, err := cnpj.Normalize(id)
	if err != nil {
		s.metrics.lookup("none", outcomeInvalid)
		return nil, err
	}

	if s.cache != nil {
		record, err := s.cache.Get(ctx, digits)
		switch {
		case err == nil:
			s.metrics.cache(true)
			s.metrics.lookup(record.Source, outcomeCached)
			return record, nil
		case errors.Is(err, ErrCacheMiss):
			s.metrics.cache(false)
		default:
			s.logger.Warn("registry cache read failed", zap.String("cnpj", digits), zap.Error(err))
		}
	}

	record, err := s.resolver.Resolve(ctx, digits)
	if err != nil {
		return nil, err
	}
	if record == nil {
		s.metrics.lookup("none", outcomeUnresolved)
		return nil, ErrRecordNotFound
	}
	s.metrics.lookup(record.Source, outcomeResolved)

	if s.cache != nil {
		if err := s.cache.Set(ctx, record); err != nil {
			s.logger.Warn("registry cache write failed", zap.String("cnpj", digits), zap.Error(err))
		}
	}
	return record, nil
}

// Search forwards a free-text search to the primary registry. It never fails.
func (s *RegistryService) Search(ctx context.Context, filterText, state string) []json.RawMessage {
	items := s.resolver.SearchByAddress(ctx, strings.TrimSpace(filterText), strings.TrimSpace(state))
	if items == nil {
		items = []json.RawMessage{}
	}
	s.metrics.search(len(items) > 0)
	return items
}
