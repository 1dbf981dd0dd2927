package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestNewHandler_Middlewares(t *testing.T) {
	cfg := &config.Config{
		Server: config.Server{AllowedOrigins: []string{"http://localhost:8501"}},
	}
	h := NewHandler(cfg, Services{DB: okPinger{}})

	tests := []struct {
		name       string
		method     string
		path       string
		origin     string
		wantCode   int
		wantOrigin string
	}{
		{
			name:       "origem liberada recebe cabeçalhos de CORS",
			method:     http.MethodGet,
			path:       "/healthcheck",
			origin:     "http://localhost:8501",
			wantCode:   http.StatusOK,
			wantOrigin: "http://localhost:8501",
		},
		{
			name:     "origem desconhecida não recebe CORS",
			method:   http.MethodGet,
			path:     "/healthcheck",
			origin:   "http://evil.example",
			wantCode: http.StatusOK,
		},
		{
			name:       "preflight responde sem chegar na rota",
			method:     http.MethodOptions,
			path:       "/v1/sales",
			origin:     "http://localhost:8501",
			wantCode:   http.StatusOK,
			wantOrigin: "http://localhost:8501",
		},
		{
			name:     "rota inexistente",
			method:   http.MethodGet,
			path:     "/v1/campaigns",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
		})
	}
}
