package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// ListSales retorna as vendas filtradas, da mais recente para a mais antiga
func ListSales(service reporting.SalesLister) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filter, err := parseSalesFilter(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err, "sales: filtro inválido")
			return
		}

		records, err := service.ListSales(r.Context(), filter)
		if err != nil {
			writeServiceError(w, logger, err, "sales: erro ao buscar vendas")
			return
		}

		logger.WithFields(filterFields(filter)).
			WithField("sales_returned", len(records)).
			Info("sales: vendas listadas")

		writeJSON(w, logger, records)
	})
}

// AggregateSales agrupa as vendas filtradas por group_by (ex: branch,month) e retorna as medidas pedidas
func AggregateSales(service reporting.SalesAggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filter, err := parseSalesFilter(query)
		if err != nil {
			writeServiceError(w, logger, err, "sales-aggregate: filtro inválido")
			return
		}

		dims, err := aggregating.ParseDimensions(query.Get("group_by"))
		if err != nil {
			writeServiceError(w, logger, err, "sales-aggregate: dimensão inválida")
			return
		}

		measures, err := aggregating.ParseMeasures(query.Get("measures"))
		if err != nil {
			writeServiceError(w, logger, err, "sales-aggregate: medida inválida")
			return
		}

		rows, err := service.Aggregate(r.Context(), filter, dims, measures)
		if err != nil {
			writeServiceError(w, logger, err, "sales-aggregate: erro ao agregar vendas")
			return
		}

		logger.WithFields(log.Fields{
			"group_by":     query.Get("group_by"),
			"sales_groups": len(rows),
		}).Info("sales-aggregate: agregação concluída")

		writeJSON(w, logger, rows)
	})
}

// GetSalesMetrics retorna os indicadores do conjunto filtrado e de cada ano
func GetSalesMetrics(service reporting.SalesSummarizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filter, err := parseSalesFilter(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err, "sales-metrics: filtro inválido")
			return
		}

		summary, err := service.Summarize(r.Context(), filter)
		if err != nil {
			writeServiceError(w, logger, err, "sales-metrics: erro ao calcular indicadores")
			return
		}

		writeJSON(w, logger, summary)
	})
}

// GetAvailableFilters retorna as filiais, meses, anos e semanas disponíveis para os filtros
func GetAvailableFilters(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		available, err := service.GetAvailableFilters(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "sales-filters: erro ao buscar filtros disponíveis")
			return
		}

		writeJSON(w, logger, available)
	})
}
