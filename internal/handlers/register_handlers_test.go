package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/handlers"
	"github.com/SscSPs/bank_recon_engine/internal/platform/config"
	"github.com/SscSPs/bank_recon_engine/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, cfg *config.Config, db handlers.Pinger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	err := handlers.RegisterRoutes(r, cfg, handlers.RouterDeps{
		Services: &portssvc.ServiceContainer{
			Statement:      new(MockStatementService),
			Ledger:         new(MockLedgerService),
			Reconciliation: new(MockReconciliationService),
			Period:         new(MockPeriodService),
		},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Posthog: &utils.PosthogClientWrapper{},
		DB:      db,
	})
	require.NoError(t, err)
	return r
}

func baseConfig() *config.Config {
	return &config.Config{
		IsProduction:   true,
		JWTSecret:      "router-secret",
		RateLimit:      "60-M",
		MaxUploadBytes: 1 << 20,
	}
}

func TestRegisterRoutes_Health(t *testing.T) {
	cfg := baseConfig()
	cfg.EnableDBCheck = true

	w := httptest.NewRecorder()
	newTestRouter(t, cfg, fakePinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = httptest.NewRecorder()
	newTestRouter(t, cfg, fakePinger{err: errors.New("down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRegisterRoutes_HealthSkipsDBWhenCheckDisabled(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, baseConfig(), fakePinger{err: errors.New("down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRoutes_APIRequiresAuth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, baseConfig(), nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/organizations/o1/accounting-periods", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRoutes_BadRateLimit(t *testing.T) {
	cfg := baseConfig()
	cfg.RateLimit = "often"

	err := handlers.RegisterRoutes(gin.New(), cfg, handlers.RouterDeps{
		Services: &portssvc.ServiceContainer{},
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
