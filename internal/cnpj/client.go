// Package cnpj resolves Brazilian company registry identifiers against the
// CNPJá commercial API, falling back to the public BrasilAPI when it fails.
package cnpj

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/sales-routes/api/internal/entity"
)

const (
	DefaultPrimaryBaseURL  = "https://api.cnpja.com"
	DefaultFallbackBaseURL = "https://brasilapi.com.br"

	defaultTimeout = 10 * time.Second
	searchLimit    = 10
	cnpjLength     = 14
	maxBodyBytes   = 4 << 20
)

// placeholderKeys are sample values shipped in env templates; they count as "no key".
var placeholderKeys = map[string]struct{}{
	"your_api_key_here": {},
	"your-api-key":      {},
	"YOUR_API_KEY":      {},
	"CHANGE_ME":         {},
}

// KeySource supplies the CNPJá API key at request time.
type KeySource interface {
	APIKey(ctx context.Context) string
}

// StaticKey is a KeySource that always returns the same key.
type StaticKey string

// APIKey implements KeySource.
func (k StaticKey) APIKey(context.Context) string { return string(k) }

// HTTPDoer is the subset of *http.Client used by the client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config wires a Client.
type Config struct {
	PrimaryBaseURL  string
	FallbackBaseURL string
	Keys            KeySource
	HTTPClient      HTTPDoer
	Timeout         time.Duration
	PhoneRegion     string
	Logger          *zap.Logger
}

// Client talks to the primary and fallback registries.
type Client struct {
	primaryURL  string
	fallbackURL string
	keys        KeySource
	http        HTTPDoer
	mapper      *mapper
	logger      *zap.Logger
	now         func() time.Time
}

// NewClient builds a Client, applying defaults for anything left empty.
func NewClient(cfg Config) *Client {
	if cfg.PrimaryBaseURL == "" {
		cfg.PrimaryBaseURL = DefaultPrimaryBaseURL
	}
	if cfg.FallbackBaseURL == "" {
		cfg.FallbackBaseURL = DefaultFallbackBaseURL
	}
	if cfg.Keys == nil {
		cfg.Keys = StaticKey("")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = defaultPhoneRegion
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client{
		primaryURL:  strings.TrimRight(cfg.PrimaryBaseURL, "/"),
		fallbackURL: strings.TrimRight(cfg.FallbackBaseURL, "/"),
		keys:        cfg.Keys,
		http:        cfg.HTTPClient,
		mapper:      &mapper{region: strings.ToUpper(cfg.PhoneRegion)},
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Normalize strips every non-digit character and checks that 14 digits remain.
func Normalize(id string) (string, error) {
	digits := onlyDigits(id)
	if len(digits) != cnpjLength {
		return "", ErrInvalidCNPJ
	}
	return digits, nil
}

// Resolve looks up id on the primary registry and, on any failure there, on the fallback.
// A malformed id fails with ErrInvalidCNPJ before any request is made. When both
// registries fail the result is nil with a nil error.
func (c *Client) Resolve(ctx context.Context, id string) (*entity.RegistryRecord, error) {
	digits, err := Normalize(id)
	if err != nil {
		return nil, err
	}

	record, err := c.lookupPrimary(ctx, digits)
	if err == nil {
		return record, nil
	}
	c.logger.Warn("primary registry lookup failed, trying fallback",
		zap.String("cnpj", digits),
		zap.String("kind", string(KindOf(err))),
		zap.Error(err),
	)

	record, err = c.lookupFallback(ctx, digits)
	if err != nil {
		c.logger.Warn("fallback registry lookup failed",
			zap.String("cnpj", digits),
			zap.String("kind", string(KindOf(err))),
			zap.Error(err),
		)
		return nil, nil
	}
	return record, nil
}

func (c *Client) lookupPrimary(ctx context.Context, digits string) (*entity.RegistryRecord, error) {
	endpoint := fmt.Sprintf("%s/office/%s?geocoding=true", c.primaryURL, digits)
	body, err := c.get(ctx, entity.SourceCNPJA, endpoint, c.keys.APIKey(ctx))
	if err != nil {
		return nil, err
	}

	office, err := decodeOffice(body)
	if err != nil {
		return nil, newLookupError(KindUpstream, entity.SourceCNPJA, 0, "unexpected payload", err)
	}

	record := c.mapper.fromOffice(digits, office)
	record.ResolvedAt = c.now()
	return record, nil
}

func (c *Client) lookupFallback(ctx context.Context, digits string) (*entity.RegistryRecord, error) {
	endpoint := fmt.Sprintf("%s/api/cnpj/v1/%s", c.fallbackURL, digits)
	body, err := c.get(ctx, entity.SourceBrasilAPI, endpoint, "")
	if err != nil {
		return nil, err
	}

	payload, err := decodeBrasilAPI(body)
	if err != nil {
		return nil, newLookupError(KindUpstream, entity.SourceBrasilAPI, 0, "unexpected payload", err)
	}

	record := c.mapper.fromBrasilAPI(digits, payload)
	record.ResolvedAt = c.now()
	return record, nil
}

// SearchByAddress queries the primary registry by free text and optional state.
// It never fails: a missing key, transport error or non-2xx status all yield an empty slice.
func (c *Client) SearchByAddress(ctx context.Context, filterText, state string) []json.RawMessage {
	items := []json.RawMessage{}

	key := c.keys.APIKey(ctx)
	if !usableKey(key) {
		return items
	}

	query := url.Values{}
	query.Set("q", filterText)
	if state = strings.TrimSpace(state); state != "" {
		query.Set("state", strings.ToUpper(state))
	}
	query.Set("limit", strconv.Itoa(searchLimit))

	body, err := c.get(ctx, entity.SourceCNPJA, c.primaryURL+"/office?"+query.Encode(), key)
	if err != nil {
		c.logger.Warn("registry search failed", zap.String("query", filterText), zap.Error(err))
		return items
	}

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("registry search returned an unexpected payload", zap.Error(err))
		return items
	}
	if len(payload.Items) > searchLimit {
		payload.Items = payload.Items[:searchLimit]
	}
	return append(items, payload.Items...)
}

func (c *Client) get(ctx context.Context, source, endpoint, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newLookupError(KindUpstream, source, 0, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if key != "" {
		req.Header.Set("Authorization", key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newLookupError(KindUpstream, source, 0, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, newLookupError(KindNotFound, source, resp.StatusCode, "company not found", nil)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, newLookupError(KindAuth, source, resp.StatusCode, "api key invalid or expired", nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, newLookupError(KindUpstream, source, resp.StatusCode, "unexpected status", nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newLookupError(KindUpstream, source, resp.StatusCode, "failed to read response", err)
	}
	return body, nil
}

func usableKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	_, placeholder := placeholderKeys[key]
	return !placeholder
}
