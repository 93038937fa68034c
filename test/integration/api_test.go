// Package integration drives the secret API end to end through the DI container,
// once per secret store backend.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/nyx/internal/app"
	"github.com/allisson/nyx/internal/config"
	secretsDTO "github.com/allisson/nyx/internal/secrets/http/dto"
	"github.com/allisson/nyx/internal/testutil"
)

type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
}

func (ctx *integrationTestContext) makeRequest(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	//nolint:gosec // httptest server on localhost
	resp, err := client.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func baseConfig() *config.Config {
	return &config.Config{
		ServerHost:        "localhost",
		ServerPort:        8080,
		LogLevel:          "error",
		RSAKeySizeBits:    2048,
		RSAPadding:        config.RSAPaddingOAEP,
		MaxPlaintextBytes: 4096,
		RedisKeyPrefix:    "nyx:secret:",
	}
}

func setupIntegrationTest(t *testing.T, store string) *integrationTestContext {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := baseConfig()
	ictx := &integrationTestContext{}

	switch store {
	case "postgres":
		testutil.SkipIfNoPostgres(t)
		ictx.db = testutil.SetupPostgresDB(t)
		cfg.SecretStore = config.SecretStoreDatabase
		cfg.DBDriver = "postgres"
		cfg.DBConnectionString = testutil.GetPostgresTestDSN()
	case "mysql":
		testutil.SkipIfNoMySQL(t)
		ictx.db = testutil.SetupMySQLDB(t)
		cfg.SecretStore = config.SecretStoreDatabase
		cfg.DBDriver = "mysql"
		cfg.DBConnectionString = testutil.GetMySQLTestDSN()
	case "redis":
		mr := miniredis.RunT(t)
		cfg.SecretStore = config.SecretStoreRedis
		cfg.RedisURL = "redis://" + mr.Addr() + "/0"
	default:
		cfg.SecretStore = config.SecretStoreMemory
	}
	cfg.DBMaxOpenConnections = 10
	cfg.DBMaxIdleConnections = 5
	cfg.DBConnMaxLifetime = time.Hour

	ictx.container = app.NewContainer(cfg)
	httpSrv, err := ictx.container.HTTPServer()
	require.NoError(t, err)
	ictx.server = httptest.NewServer(httpSrv.GetHandler())

	t.Cleanup(func() {
		ictx.server.Close()
		if err := ictx.container.Shutdown(context.Background()); err != nil {
			t.Logf("container shutdown: %v", err)
		}
		if ictx.db != nil {
			testutil.TeardownDB(t, ictx.db)
		}
	})

	return ictx
}

var stores = []string{"memory", "redis", "postgres", "mysql"}

func TestIntegration_SecretLifecycle(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			ictx := setupIntegrationTest(t, store)

			resp, body := ictx.makeRequest(t, http.MethodPost, "/v1/secrets", secretsDTO.SealSecretRequest{
				Content: "hello",
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			var sealed secretsDTO.SealSecretResponse
			require.NoError(t, json.Unmarshal(body, &sealed))
			assert.Equal(t, 2048, sealed.KeySizeBits)
			assert.NotEmpty(t, sealed.Reference)
			assert.NotContains(t, string(body), "hello")

			resp, body = ictx.makeRequest(t, http.MethodGet, "/v1/secrets/"+sealed.Reference, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var unsealed secretsDTO.UnsealSecretResponse
			require.NoError(t, json.Unmarshal(body, &unsealed))
			assert.Equal(t, "hello", unsealed.Content)

			resp, body = ictx.makeRequest(t, http.MethodGet, "/v1/secrets/"+sealed.Reference, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			assert.Contains(t, string(body), "not_found")

			if ictx.db != nil {
				assert.Equal(t, 0, testutil.CountSecretRecords(t, ictx.db))
			}
		})
	}
}

func TestIntegration_LegacyRoutes(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			ictx := setupIntegrationTest(t, store)

			resp, body := ictx.makeRequest(t, http.MethodPost, "/encrypt", secretsDTO.LegacyEncryptRequest{
				Content: "legacy secret",
			})
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var encrypted secretsDTO.LegacyEncryptResponse
			require.NoError(t, json.Unmarshal(body, &encrypted))

			resp, body = ictx.makeRequest(t, http.MethodGet, "/decrypt/"+encrypted.Key, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Contains(t, string(body), "legacy secret")

			resp, _ = ictx.makeRequest(t, http.MethodGet, "/decrypt/"+encrypted.Key, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestIntegration_ConcurrentUnsealDeliversOnce(t *testing.T) {
	for _, store := range stores {
		t.Run(store, func(t *testing.T) {
			ictx := setupIntegrationTest(t, store)

			resp, body := ictx.makeRequest(t, http.MethodPost, "/v1/secrets", secretsDTO.SealSecretRequest{
				Content: "only once",
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			var sealed secretsDTO.SealSecretResponse
			require.NoError(t, json.Unmarshal(body, &sealed))

			const readers = 10
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				statuses = map[int]int{}
			)
			for range readers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					resp, _ := ictx.makeRequest(t, http.MethodGet, "/v1/secrets/"+sealed.Reference, nil)
					mu.Lock()
					statuses[resp.StatusCode]++
					mu.Unlock()
				}()
			}
			wg.Wait()

			assert.Equal(t, 1, statuses[http.StatusOK])
			assert.Equal(t, readers-1, statuses[http.StatusNotFound])
		})
	}
}

func TestIntegration_Validation(t *testing.T) {
	ictx := setupIntegrationTest(t, "memory")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"empty content", http.MethodPost, "/v1/secrets", secretsDTO.SealSecretRequest{}, http.StatusUnprocessableEntity},
		{
			"unsupported key size",
			http.MethodPost,
			"/v1/secrets",
			secretsDTO.SealSecretRequest{Content: "x", KeySizeBits: 1024},
			http.StatusUnprocessableEntity,
		},
		{"malformed reference", http.MethodGet, "/v1/secrets/not-a-real-id", nil, http.StatusUnprocessableEntity},
		{
			"unknown reference",
			http.MethodGet,
			"/v1/secrets/6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f",
			nil,
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := ictx.makeRequest(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))
		})
	}
}

func TestIntegration_Probes(t *testing.T) {
	ictx := setupIntegrationTest(t, "memory")

	resp, _ := ictx.makeRequest(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := ictx.makeRequest(t, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"store":"ok"`)
}
