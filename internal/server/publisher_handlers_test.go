package server

import (
	"net/http"
	"regexp"
	"testing"

	"pressroom/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePublisher(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreatePublisher(t, env.db, "jude@example.com", "jude-pw", true)
	testutil.CreatePublisher(t, env.db, "orr@example.com", "orr-pw", false)
	jude := basicAuth("jude@example.com", "jude-pw")
	orr := basicAuth("orr@example.com", "orr-pw")

	resp := env.do(t, http.MethodPut, "/api/v1/publisher", map[string]string{"name": "New", "email": "new@example.com"}, orr)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/v1/publisher", map[string]string{"name": "Dup", "email": "orr@example.com"}, jude)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	for _, email := range []string{"invalid", "invalid@also", "invalid.also", "invalid@also. "} {
		resp := env.do(t, http.MethodPut, "/api/v1/publisher", map[string]string{"name": "Bad", "email": email}, jude)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, email)
	}

	resp = env.do(t, http.MethodPut, "/api/v1/publisher", map[string]string{"name": "New", "email": "New@Example.com"}, jude)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created CreatedPublisherResponse
	decode(t, resp, &created)
	assert.Equal(t, "New", created.Name)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Regexp(t, regexp.MustCompile(`^\S{16}$`), created.Password)

	// The generated password works straight away.
	resp = env.do(t, http.MethodPost, "/api/v1/tokens", nil, basicAuth("new@example.com", created.Password))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCreatePublisher_AdminOverride(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPut, "/api/v1/publisher",
		map[string]interface{}{"name": "First", "email": "first@example.com", "full_admin": true},
		basicAuth(testAdminOverride, ""))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/publisher", map[string]string{"password": "x"}, basicAuth(testAdminOverride, ""))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetPublisher(t *testing.T) {
	env := newTestEnv(t)
	orr := testutil.CreatePublisher(t, env.db, "orr@example.com", "pw", false)
	auth := basicAuth("orr@example.com", "pw")

	resp := env.do(t, http.MethodGet, "/api/v1/publisher/"+itoa(orr.ID), nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/publisher/"+itoa(orr.ID), nil, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, map[string]interface{}{"name": "orr", "email": "orr@example.com"}, body)

	resp = env.do(t, http.MethodGet, "/api/v1/publisher/99999", nil, auth)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateOwnPublisher(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreatePublisher(t, env.db, "orr@example.com", "old-pw", false)
	testutil.CreatePublisher(t, env.db, "taken@example.com", "pw", false)
	auth := basicAuth("orr@example.com", "old-pw")

	resp := env.do(t, http.MethodPatch, "/api/v1/publisher", "{}", auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/v1/publisher", map[string]string{"email": "invalid"}, auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/v1/publisher", map[string]string{"email": "taken@example.com"}, auth)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/publisher", map[string]string{"email": "orr2@example.com", "password": "new-pw"}, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/tokens", nil, auth)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp = env.do(t, http.MethodPost, "/api/v1/tokens", nil, basicAuth("orr2@example.com", "new-pw"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
