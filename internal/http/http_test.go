package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/nyx/internal/metrics"
	secretsDomain "github.com/allisson/nyx/internal/secrets/domain"
	secretsHTTP "github.com/allisson/nyx/internal/secrets/http"
	"github.com/allisson/nyx/internal/secrets/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

// createTestServer creates a test server with a discarding logger.
func createTestServer(store Pinger) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(store, "localhost", 0, logger)
}

// createRoutedServer wires the full router around a mocked use case.
func createRoutedServer(t *testing.T, opts RouterOptions) (*Server, *mocks.MockSecretUseCase) {
	t.Helper()

	server := createTestServer(&stubPinger{})
	useCase := mocks.NewMockSecretUseCase(t)
	handler := secretsHTTP.NewSecretHandler(useCase, 64, server.logger)
	server.SetupRouter(handler, opts)

	return server, useCase
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name           string
		store          Pinger
		expectedStatus int
		expectedState  string
		expectedStore  string
	}{
		{"Success_StoreReachable", &stubPinger{}, http.StatusOK, "ready", "ok"},
		{"Error_StoreUnreachable", &stubPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "not_ready", "error"},
		{"Error_NilStore", nil, http.StatusServiceUnavailable, "not_ready", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(tt.store)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedState, response["status"])

			components, ok := response["components"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedStore, components["store"])
		})
	}
}

func TestCustomLoggerMiddleware_LogsRoutePattern(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	router := gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/secrets/:reference", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"content": "x"})
	})

	reference := uuid.New().String()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets/"+reference, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), `"route":"/v1/secrets/:reference"`)
	assert.NotContains(t, logs.String(), reference)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_SecretLifecycle(t *testing.T) {
	server, useCase := createRoutedServer(t, RouterOptions{})
	reference := uuid.New().String()

	useCase.On("Seal", mock.Anything, []byte("hello"), 0).
		Return(&secretsDomain.SealedSecret{Reference: reference, KeySizeBits: 2048, CreatedAt: time.Now()}, nil).
		Once()
	useCase.On("Unseal", mock.Anything, reference).Return([]byte("hello"), nil).Once()
	useCase.On("Unseal", mock.Anything, reference).Return(nil, secretsDomain.ErrSecretNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/secrets", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets/"+reference, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"hello"}`, w.Body.String())

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets/"+reference, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LegacyRoutes(t *testing.T) {
	server, useCase := createRoutedServer(t, RouterOptions{})
	reference := uuid.New().String()

	useCase.On("Seal", mock.Anything, []byte("legacy"), 0).
		Return(&secretsDomain.SealedSecret{Reference: reference, KeySizeBits: 2048}, nil).
		Once()
	useCase.On("Unseal", mock.Anything, reference).Return([]byte("legacy"), nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/encrypt", strings.NewReader(`{"content":"legacy"}`))
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"`+reference+`"}`, w.Body.String())

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/decrypt/"+reference, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"legacy"}`, w.Body.String())
}

func TestRouter_MaxBodySize(t *testing.T) {
	server, _ := createRoutedServer(t, RouterOptions{MaxBodyBytes: 32})

	w := httptest.NewRecorder()
	body := `{"content":"` + strings.Repeat("a", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/secrets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_RateLimitAppliesToReads(t *testing.T) {
	server, useCase := createRoutedServer(t, RouterOptions{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 0.001,
		RateLimitBurst:          1,
	})

	useCase.On("Unseal", mock.Anything, mock.Anything).Return(nil, secretsDomain.ErrSecretNotFound).Once()

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets/"+uuid.New().String(), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/decrypt/"+uuid.New().String(), nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Health checks stay outside the limiter.
	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := createRoutedServer(t, RouterOptions{})

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_NoMetricsEndpoint(t *testing.T) {
	server, _ := createRoutedServer(t, RouterOptions{})

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartWithoutRouter(t *testing.T) {
	server := createTestServer(nil)
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server, _ := createRoutedServer(t, RouterOptions{})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestServer_ShutdownStopsBackgroundWork(t *testing.T) {
	server, _ := createRoutedServer(t, RouterOptions{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          1,
	})
	require.NoError(t, server.ctx.Err())

	require.NoError(t, server.Shutdown(context.Background()))
	assert.ErrorIs(t, server.ctx.Err(), context.Canceled)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
