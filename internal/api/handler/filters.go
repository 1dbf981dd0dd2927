package handler

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// parseSalesFilter lê branches, months, years, start_date e end_date da query.
// Parâmetro ausente deixa a seleção nil ("todas"); presente e vazio vira seleção vazia.
func parseSalesFilter(query url.Values) (domain.SalesFilter, error) {
	var filter domain.SalesFilter

	if _, ok := query["branches"]; ok {
		filter.Branches = utils.ParseStringList(query.Get("branches"))
	}

	if _, ok := query["months"]; ok {
		months, err := utils.ParseIntList(query.Get("months"))
		if err != nil {
			return filter, errors.Wrap(reporting.ErrInvalidFilter, err.Error())
		}
		filter.Months = months
	}

	if _, ok := query["years"]; ok {
		years, err := utils.ParseIntList(query.Get("years"))
		if err != nil {
			return filter, errors.Wrap(reporting.ErrInvalidFilter, err.Error())
		}
		filter.Years = years
	}

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return filter, errors.Wrap(reporting.ErrInvalidFilter, err.Error())
	}
	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return filter, errors.Wrap(reporting.ErrInvalidFilter, err.Error())
	}
	filter.StartDate = startDate
	filter.EndDate = endDate

	return filter, reporting.Validate(filter)
}

func filterFields(filter domain.SalesFilter) log.Fields {
	return log.Fields{
		"filter_branches": filter.Branches,
		"filter_months":   filter.Months,
		"filter_years":    filter.Years,
	}
}
