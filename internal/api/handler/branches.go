package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/locating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// GetBranchCoordinates retorna as coordenadas das filiais em ?branches=, ou de todas sem o parâmetro
func GetBranchCoordinates(locator locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var branches []string
		if _, ok := r.URL.Query()["branches"]; ok {
			branches = utils.ParseStringList(r.URL.Query().Get("branches"))
		}

		coordinates, err := locator.Coordinates(r.Context(), branches)
		if err != nil {
			writeServiceError(w, logger, err, "branches: erro ao buscar coordenadas")
			return
		}

		writeJSON(w, logger, coordinates)
	})
}

// GetBranchRanking retorna o ranking de vendas das filiais em ?year=&month=.
// Sem parâmetros usa o mês de ontem.
func GetBranchRanking(service ranking.RankingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		yesterday := time.Now().AddDate(0, 0, -1)
		year, month := yesterday.Year(), int(yesterday.Month())

		if value := r.URL.Query().Get("year"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato de quatro dígitos (ex: 2025)", nil)
				return
			}
			year = parsed
		}

		if value := r.URL.Query().Get("month"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use um número de 1 a 12", nil)
				return
			}
			month = parsed
		}

		rankings, err := service.GetBranchRanking(r.Context(), year, time.Month(month))
		if err != nil {
			writeServiceError(w, logger, err, "branches-ranking: erro ao calcular ranking")
			return
		}

		logger.WithFields(log.Fields{
			"year":     year,
			"month":    month,
			"branches": len(rankings),
		}).Info("branches-ranking: ranking calculado")

		writeJSON(w, logger, rankings)
	})
}
