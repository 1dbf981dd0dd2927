package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

const healthcheckTimeout = 2 * time.Second

// HealthcheckHandler responde a liveness com o horário atual e o estado do banco
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := map[string]any{
			"timestamp": time.Now().Format(time.RFC3339),
			"database":  "ok",
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.WithError(err).Warn("healthcheck: banco indisponível")
				status["database"] = "unavailable"
				status["code"] = apiErrors.ErrCommunication
				writeJSONStatus(w, logger, apiErrors.StatusFor(apiErrors.ErrCommunication), status)
				return
			}
		}

		writeJSON(w, logger, status)
	})
}
