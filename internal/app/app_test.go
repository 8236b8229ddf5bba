package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"auth-system/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Env:               config.EnvTest,
		ServerPort:        "0",
		RequestTimeout:    5 * time.Second,
		APIPrefix:         "/api",
		CORSOrigins:       []string{"*"},
		StoreDriver:       config.StoreDriverMemory,
		JWTSecret:         config.DevJWTSecret,
		JWTSecretFallback: true,
		JWTTTL:            time.Hour,
		BcryptCost:        bcrypt.MinCost,
		MetricsEnabled:    false,
	}
}

func TestNew_MemoryStore(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	a, err := New(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)
	defer a.cleanup()

	assert.Contains(t, logs.String(), "development fallback secret")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Ana","email":"ana@test.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "metrics disabled")
}

func TestRun_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(context.Background(), memoryConfig(), logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
