package domain

// Metrics são os indicadores escalares de um conjunto de vendas.
// Valores crus, a formatação de moeda e porcentagem fica com o front.
type Metrics struct {
	TotalSales        float64 `json:"total_sales"`
	AvgTargetRate     float64 `json:"avg_target_rate"`
	Count             int     `json:"count"`
	MinTarget         float64 `json:"min_target"`
	MaxTarget         float64 `json:"max_target"`
	AvgTicket         float64 `json:"avg_ticket"`
	TargetsMetPercent float64 `json:"targets_met_percent"`
}

// YearMetrics são os indicadores de um único ano
type YearMetrics struct {
	Year    int     `json:"year"`
	Metrics Metrics `json:"metrics"`
}

// SalesSummary agrupa os indicadores do conjunto filtrado e de cada ano presente
type SalesSummary struct {
	Combined Metrics       `json:"combined"`
	ByYear   []YearMetrics `json:"by_year"`
}
