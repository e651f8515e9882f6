package health

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestJSON_AllDependenciesUp(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	h := &Handlers{DB: db, Rdb: rdb}
	app := fiber.New()
	app.Get("/health", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "espoir-api", out["service"])
	assert.Equal(t, "ok", out["status"])
	deps, _ := out["dependencies"].(map[string]interface{})
	require.NotNil(t, deps)
	database, _ := deps["database"].(map[string]interface{})
	assert.Equal(t, "connected", database["status"])
	redisDep, _ := deps["redis"].(map[string]interface{})
	assert.Equal(t, "connected", redisDep["status"])
}

func TestJSON_DegradedWithoutDB(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})

	h := &Handlers{DB: nil, Rdb: rdb}
	app := fiber.New()
	app.Get("/health", h.JSON)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "issue", out["status"])
	deps, _ := out["dependencies"].(map[string]interface{})
	database, _ := deps["database"].(map[string]interface{})
	assert.Equal(t, "disconnected", database["status"])
}
