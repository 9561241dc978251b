// Package integration runs end-to-end tests of the auth and farm profile API against
// PostgreSQL and MySQL. Each database is exercised only when its TEST_*_DSN is set.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmrakshaa/farm-guardian/internal/app"
	authDTO "github.com/farmrakshaa/farm-guardian/internal/auth/http/dto"
	"github.com/farmrakshaa/farm-guardian/internal/config"
	"github.com/farmrakshaa/farm-guardian/internal/httputil"
	"github.com/farmrakshaa/farm-guardian/internal/testutil"
	userDTO "github.com/farmrakshaa/farm-guardian/internal/user/http/dto"
)

type apiTestContext struct {
	container *app.Container
	server    *httptest.Server
}

func setupAPI(t *testing.T, driver, dsn string) *apiTestContext {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost:           "localhost",
		ServerPort:           0,
		AppEnv:               "test",
		DBDriver:             driver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 5,
		DBMaxIdleConnections: 2,
		DBConnMaxLifetime:    time.Minute,
		LogLevel:             "error",
		JWTSecret:            "integration-test-secret",
		AuthTokenExpiration:  time.Hour,
		MetricsNamespace:     "farm_guardian_test",
		AssessmentDBPath:     ":memory:",
	}

	container := app.NewContainer(cfg)
	server, err := container.HTTPServer()
	require.NoError(t, err)

	ts := httptest.NewServer(server.GetHandler())
	t.Cleanup(func() {
		ts.Close()
		require.NoError(t, container.Shutdown(context.Background()))
	})

	return &apiTestContext{container: container, server: ts}
}

func (a *apiTestContext) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestAPI_Integration(t *testing.T) {
	backends := []struct {
		name   string
		driver string
		env    string
		setup  func(t *testing.T) *sql.DB
	}{
		{"postgresql", config.DriverPostgres, "TEST_POSTGRES_DSN", testutil.SetupPostgresDB},
		{"mysql", config.DriverMySQL, "TEST_MYSQL_DSN", testutil.SetupMySQLDB},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			db := backend.setup(t)
			defer testutil.TeardownDB(t, db)

			api := setupAPI(t, backend.driver, os.Getenv(backend.env))
			runAPIScenario(t, api)
		})
	}
}

func runAPIScenario(t *testing.T, api *apiTestContext) {
	register := map[string]string{
		"name":          "Gurpreet Singh",
		"email":         "Gurpreet@Example.com",
		"phone":         "9876501234",
		"address":       "Village Road 4",
		"aadhaarNumber": "234523452345",
		"village":       "Samrala",
		"password":      "secret123",
	}

	var token string

	t.Run("health and readiness", func(t *testing.T) {
		resp, _ := api.do(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = api.do(t, http.MethodGet, "/ready", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("register", func(t *testing.T) {
		resp, body := api.do(t, http.MethodPost, "/api/auth/register", register, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

		var session authDTO.SessionResponse
		require.NoError(t, json.Unmarshal(body, &session))
		assert.Equal(t, "gurpreet@example.com", session.User.Email)
		assert.Equal(t, "user", session.User.Role)
		assert.NotContains(t, string(body), "password")
		require.NotEmpty(t, session.Token)
		token = session.Token

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, token, cookie.Value)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		resp, body := api.do(t, http.MethodPost, "/api/auth/register", register, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, "duplicate_email", errResp.Error)

		other := map[string]string{}
		for k, v := range register {
			other[k] = v
		}
		other["email"] = "another@example.com"
		resp, body = api.do(t, http.MethodPost, "/api/auth/register", other, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, "duplicate_national_id", errResp.Error)
	})

	t.Run("login", func(t *testing.T) {
		resp, body := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "gurpreet@example.com",
			"password": "secret123",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		resp, _ = api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "gurpreet@example.com",
			"password": "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("profile requires a token", func(t *testing.T) {
		resp, _ := api.do(t, http.MethodGet, "/api/auth/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = api.do(t, http.MethodGet, "/api/auth/profile", nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("update farm data and read coverage", func(t *testing.T) {
		resp, body := api.do(t, http.MethodPut, "/api/auth/farm-data", map[string]any{
			"farmData": map[string]any{
				"totalAcres": 8,
				"livestock": map[string]any{
					"pigs":    map[string]int{"total": 20, "vaccinated": 15},
					"poultry": map[string]int{"total": 100, "vaccinated": 100},
				},
			},
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var envelope userDTO.UserEnvelope
		require.NoError(t, json.Unmarshal(body, &envelope))
		assert.Equal(t, 20, envelope.User.FarmData.Livestock.Pigs.Total)

		resp, body = api.do(t, http.MethodGet, "/api/auth/profile", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile userDTO.ProfileResponse
		require.NoError(t, json.Unmarshal(body, &profile))
		assert.Equal(t, 8.0, profile.User.FarmData.TotalAcres)
		assert.Equal(t, 120, profile.Coverage.Total)
		assert.Equal(t, 115, profile.Coverage.Vaccinated)
		assert.Equal(t, 96, profile.Coverage.Percentage)
	})

	t.Run("negative counts are rejected", func(t *testing.T) {
		resp, body := api.do(t, http.MethodPut, "/api/auth/farm-data", map[string]any{
			"farmData": map[string]any{
				"livestock": map[string]any{"goats": map[string]int{"total": -1}},
			},
		}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.Equal(t, "validation_error", errResp.Error)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		resp, _ := api.do(t, http.MethodPost, "/api/auth/logout", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	})
}
