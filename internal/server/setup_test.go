package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pressroom/internal/config"
	"pressroom/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminOverride = "override-secret-for-tests-only-0123456789"

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		Port:            "0",
		DBDriver:        "sqlite",
		SecretKey:       "test-secret-key-that-is-long-enough-123",
		TokenTTLSeconds: 43200,
		AdminOverride:   testAdminOverride,
		AllowedOrigins:  "*",
	}
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	srv *Server
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRedis(t, nil)
}

func newTestEnvWithRedis(t *testing.T, rdb *redis.Client) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	srv, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return &testEnv{app: srv.NewApp(), db: db, srv: srv}
}

func basicAuth(identifier, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(identifier+":"+secret))
}

// do sends a request through the app. body may be nil, a string (sent
// verbatim) or any value encoded as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, auth string) *http.Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
