package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/locating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Sales(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/sales/aggregate",
			Method:  http.MethodGet,
			Handler: AggregateSales(service),
		},
		{
			Path:    "/v1/sales/metrics",
			Method:  http.MethodGet,
			Handler: GetSalesMetrics(service),
		},
		{
			Path:    "/v1/sales/filters",
			Method:  http.MethodGet,
			Handler: GetAvailableFilters(service),
		},
	}
}

func Dashboard(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
	}
}

func Branches(locator locating.Locator, rankingService ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/branches/coordinates",
			Method:  http.MethodGet,
			Handler: GetBranchCoordinates(locator),
		},
		{
			Path:    "/v1/branches/ranking",
			Method:  http.MethodGet,
			Handler: GetBranchRanking(rankingService),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
