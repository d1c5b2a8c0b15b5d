package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/sellerlink/internal/api/middleware"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		inboundID string
		handler   echo.HandlerFunc
		wantKeep  bool
		wantLevel string
	}{
		{
			name:      "generates id",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLevel: "level=DEBUG",
		},
		{
			name:      "keeps a valid inbound id",
			inboundID: "5f1b9a7e-0c1d-4b7a-9d6e-3c2b1a0f9e8d",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantKeep:  true,
			wantLevel: "level=DEBUG",
		},
		{
			name:      "replaces a malformed inbound id",
			inboundID: "<script>",
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusUnauthorized) },
			wantLevel: "level=WARN",
		},
		{
			name:      "handler error is rendered and logged",
			handler:   func(echo.Context) error { return errors.New("boom") },
			wantLevel: "level=ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			e := echo.New()
			e.Use(mw.RequestLogger(logger))
			e.GET("/api/v1/oauth/callback", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/oauth/callback?code=ANsecret&state=s", http.NoBody)
			if tt.inboundID != "" {
				req.Header.Set(mw.RequestIDHeader, tt.inboundID)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			id := rec.Header().Get(mw.RequestIDHeader)
			_, err := uuid.Parse(id)
			require.NoError(t, err)
			if tt.wantKeep {
				assert.Equal(t, tt.inboundID, id)
			}

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "request_id="+id)
			assert.NotContains(t, out, "ANsecret")
		})
	}
}
