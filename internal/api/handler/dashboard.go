package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetDashboard retorna todas as visões do painel para o filtro da query
func GetDashboard(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filter, err := parseSalesFilter(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err, "dashboard: filtro inválido")
			return
		}

		logger.WithFields(filterFields(filter)).Debug("dashboard: montando painel")

		dashboard, err := service.GetDashboard(r.Context(), filter)
		if err != nil {
			writeServiceError(w, logger, err, "dashboard: erro ao montar painel")
			return
		}

		logger.WithFields(log.Fields{
			"sales_count": dashboard.Metrics.Count,
			"sales_total": dashboard.Metrics.TotalSales,
		}).Info("dashboard: painel gerado com sucesso")

		writeJSON(w, logger, dashboard)
	})
}
