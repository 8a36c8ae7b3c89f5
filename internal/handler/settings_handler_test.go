package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-routes/api/internal/service"
)

func TestSettingsHandler_UpdateCNPJAKey(t *testing.T) {
	tests := map[string]struct {
		body       string
		repoErr    error
		expectCode int
	}{
		"updated":       {body: `{"api_key":"new-key"}`, expectCode: http.StatusOK},
		"empty key":     {body: `{"api_key":"  "}`, expectCode: http.StatusBadRequest},
		"invalid body":  {body: `[`, expectCode: http.StatusBadRequest},
		"store failure": {body: `{"api_key":"k"}`, repoErr: context.DeadlineExceeded, expectCode: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &settingsRepoStub{values: map[string]string{}, err: tt.repoErr}
			h := NewSettingsHandler(service.NewSettingsService(repo, "", nil))

			e := echo.New()
			req := httptest.NewRequest(http.MethodPut, "/admin/settings/cnpja-key", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := h.UpdateCNPJAKey(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, rec.Code)
			}
			if tt.expectCode == http.StatusOK && repo.values[service.SettingCNPJAKey] != "new-key" {
				t.Fatalf("expected key to be stored, got %+v", repo.values)
			}
		})
	}
}

func TestSettingsHandler_CNPJAKeyStatus(t *testing.T) {
	repo := &settingsRepoStub{values: map[string]string{}}
	h := NewSettingsHandler(service.NewSettingsService(repo, "", nil))
	e := echo.New()

	status := func() bool {
		req := httptest.NewRequest(http.MethodGet, "/admin/settings/cnpja-key", nil)
		rec := httptest.NewRecorder()
		if err := h.CNPJAKeyStatus(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var payload struct {
			Data struct {
				Configured bool `json:"configured"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return payload.Data.Configured
	}

	if status() {
		t.Fatalf("expected no key configured")
	}
	repo.values[service.SettingCNPJAKey] = "stored"
	if !status() {
		t.Fatalf("expected stored key to be reported")
	}
}
