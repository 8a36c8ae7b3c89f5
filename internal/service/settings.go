package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/sales-routes/api/internal/cnpj"
	"github.com/octobees/sales-routes/api/internal/repository"
)

// SettingCNPJAKey is the settings key holding the CNPJá API key.
const SettingCNPJAKey = "cnpja_api_key"

// ErrEmptyAPIKey is returned when trying to store a blank API key.
var ErrEmptyAPIKey = errors.New("api key must not be empty")

// SettingsService manages the stored registry API key. The stored value takes
// precedence over the key the process was configured with.
type SettingsService struct {
	repo       repository.SettingsRepository
	defaultKey string
	logger     *zap.Logger
}

var _ cnpj.KeySource = (*SettingsService)(nil)

// NewSettingsService creates a SettingsService falling back to defaultKey.
func NewSettingsService(repo repository.SettingsRepository, defaultKey string, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, defaultKey: strings.TrimSpace(defaultKey), logger: logger}
}

// APIKey implements cnpj.KeySource.
func (s *SettingsService) APIKey(ctx context.Context) string {
	value, err := s.repo.Get(ctx, SettingCNPJAKey)
	if err == nil && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
		s.logger.Warn("failed to read stored api key, using configured key", zap.Error(err))
	}
	return s.defaultKey
}

// SetAPIKey stores key, replacing any previous value.
func (s *SettingsService) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	return s.repo.Set(ctx, SettingCNPJAKey, key)
}

// HasAPIKey reports whether any usable key is available, without revealing it.
func (s *SettingsService) HasAPIKey(ctx context.Context) bool {
	return s.APIKey(ctx) != ""
}
