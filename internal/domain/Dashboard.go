package domain

// Dashboard reúne todas as visões exibidas no painel para um filtro
type Dashboard struct {
	Filters       SalesFilter        `json:"filters"`
	Metrics       Metrics            `json:"metrics"`
	MetricsByYear []YearMetrics      `json:"metrics_by_year"`
	MonthlyByYear []AggregateRow     `json:"monthly_by_year"`
	MonthlyTrend  []AggregateRow     `json:"monthly_trend"`
	WeeklyTrend   []AggregateRow     `json:"weekly_trend"`
	ByWeekday     []AggregateRow     `json:"by_weekday"`
	BranchMonthly []AggregateRow     `json:"branch_monthly"`
	ByBranch      []AggregateRow     `json:"by_branch"`
	Coordinates   []BranchCoordinate `json:"coordinates"`
	Records       SalesTable         `json:"records"`
}
