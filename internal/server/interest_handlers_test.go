package server

import (
	"net/http"
	"testing"
	"time"

	"pressroom/internal/models"
	"pressroom/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestLifecycle(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreatePublisher(t, env.db, "jude@example.com", "pw", false)
	auth := basicAuth("jude@example.com", "pw")

	resp := env.do(t, http.MethodGet, "/api/v1/interests", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []InterestResponse
	decode(t, resp, &list)
	assert.Empty(t, list)

	resp = env.do(t, http.MethodPut, "/api/v1/interests", map[string]string{"name": "go", "description": "gophers"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	for _, body := range []interface{}{
		"",
		map[string]string{"name": "go"},
		map[string]string{"description": "gophers"},
		map[string]string{"name": "", "description": "gophers"},
	} {
		resp := env.do(t, http.MethodPut, "/api/v1/interests", body, auth)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
	}

	resp = env.do(t, http.MethodPut, "/api/v1/interests", map[string]string{"name": "go", "description": "gophers"}, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = env.do(t, http.MethodPut, "/api/v1/interests", map[string]string{"name": "go", "description": "again"}, auth)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp = env.do(t, http.MethodPut, "/api/v1/interests", map[string]string{"name": "web dev", "description": "browsers"}, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/interests/go", map[string]string{"description": ""}, auth)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/v1/interests/rust", map[string]string{"description": "crabs"}, auth)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodPatch, "/api/v1/interests/web%20dev", map[string]string{"description": "the web"}, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/interests", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &list)
	assert.Equal(t, []InterestResponse{
		{Name: "go", Description: "gophers"},
		{Name: "web dev", Description: "the web"},
	}, list)
}

func TestDeleteInterest_DetachesFromPosts(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreatePublisher(t, env.db, "jude@example.com", "pw", false)
	auth := basicAuth("jude@example.com", "pw")
	golang := testutil.CreateInterest(t, env.db, "go")
	post := testutil.CreatePost(t, env.db, "tagged",
		testutil.PublishedAt(time.Now().UTC().Add(-time.Hour)), testutil.WithInterests(golang))

	resp := env.do(t, http.MethodDelete, "/api/v1/interests/go", nil, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/v1/interests/go", nil, auth)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Interest{}).Count(&count).Error)
	assert.Zero(t, count)

	resp = env.do(t, http.MethodGet, "/api/v1/posts/"+itoa(post.ID), nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var detail PostDetail
	decode(t, resp, &detail)
	assert.Empty(t, detail.Interests)

	resp = env.do(t, http.MethodDelete, "/api/v1/interests/go", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
