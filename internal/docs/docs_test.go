package docs

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_DescribesProductRoutes(t *testing.T) {
	var doc struct {
		Swagger  string                     `json:"swagger"`
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(Document(), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api", doc.BasePath)
	for _, path := range []string{"/products", "/products/{product_id}", "/products/name/{name}", "/products/count"} {
		assert.Contains(t, doc.Paths, path)
	}
}

func TestRegister(t *testing.T) {
	app := fiber.New()
	Register(app.Group("/api"), "/api")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/swagger.json", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `url: "/api/swagger.json"`)
}
