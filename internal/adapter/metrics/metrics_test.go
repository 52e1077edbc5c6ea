package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YelzhanWeb/basecart/internal/domain"
)

func TestMiddlewareLabelsByRouteTemplate(t *testing.T) {
	m := New()
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/storefront/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, slug := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/storefront/"+slug, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	count := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/storefront/{slug}", "404"))
	assert.Equal(t, float64(2), count)
}

func TestOrderCounters(t *testing.T) {
	m := New()
	id := int64(1)
	m.OrderCreated(&id)
	m.OrderCreated(nil)
	m.OrderCreated(&id)
	m.OrderStatusChanged(domain.StatusReady)
	m.MenuItemsImported(3, 1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ordersCreated.WithLabelValues("true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ordersCreated.WithLabelValues("false")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.statusChanges.WithLabelValues("ready")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.menuImported.WithLabelValues("imported")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.menuImported.WithLabelValues("failed")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.OrderStatusChanged(domain.StatusCompleted)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `basecart_orders_status_changes_total{status="completed"} 1`)
}
