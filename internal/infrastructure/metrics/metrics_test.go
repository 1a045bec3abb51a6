package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockOperation_Cuenta(t *testing.T) {
	m := New()
	m.StockOperation("attach", "created")
	m.StockOperation("attach", "created")
	m.StockOperation("attach", "retried")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.stockOps.WithLabelValues("attach", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockOps.WithLabelValues("attach", "retried")))
}

func TestMiddleware_EtiquetaConPatronDeRuta(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/items/:id", "204")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "inventaris_http_requests_total"))
}
