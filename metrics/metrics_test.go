package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.Observe("GetPlayer", 200, 5*time.Millisecond)
	m.Observe("GetPlayer", 200, 7*time.Millisecond)
	m.Observe("GetPlayer", 500, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.invocations.WithLabelValues("GetPlayer", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("GetPlayer", "500")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe("GetShopInventory", 200, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `datapad_function_invocations_total{function="GetShopInventory",status="200"} 1`)
}
