package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	writeJSONStatus(w, logger, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("erro ao codificar resposta")
	}
}

// writeServiceError traduz o erro do serviço: filtro inválido vira 400, o resto é falha da base
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error, message string) {
	switch {
	case errors.Is(err, reporting.ErrInvalidFilter),
		errors.Is(err, ranking.ErrInvalidPeriod):
		logger.WithError(err).Warn(message)
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, aggregating.ErrUnknownDimension),
		errors.Is(err, aggregating.ErrDuplicateDimension),
		errors.Is(err, aggregating.ErrUnknownMeasure):
		logger.WithError(err).Warn(message)
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, reporting.ErrViewFailed):
		logger.WithError(err).Error(message)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
	default:
		logger.WithError(err).Error(message)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, message, nil)
	}
}
