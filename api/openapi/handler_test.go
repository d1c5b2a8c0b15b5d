package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sellerlink/api/openapi"
)

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{name: "ui", path: "/docs/index.html", wantStatus: http.StatusOK, wantBody: `url: "/openapi.json"`},
		{name: "bare", path: "/docs", wantStatus: http.StatusMovedPermanently, wantLocation: "/docs/index.html"},
		{name: "slash", path: "/docs/", wantStatus: http.StatusMovedPermanently, wantLocation: "/docs/index.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			openapi.RegisterRoutes(e)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
