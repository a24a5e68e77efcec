package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/admin/items/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/admin/items/:id", "204"))
	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/items/"+id, nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/admin/items/:id", "204")))

	beforeErr := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/boom", "418"))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/boom", "418")))
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(publishes.WithLabelValues("failed"))
	RecordPublish("failed")
	assert.Equal(t, before+1, testutil.ToFloat64(publishes.WithLabelValues("failed")))

	SetPendingReview(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(pendingReview))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordLogin("success")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trtlmarket_auth_logins_total")
}
