// Package summarizing calcula os indicadores escalares (KPIs) de uma tabela de vendas
package summarizing

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
)

var hundred = decimal.NewFromInt(100)

// Summarize calcula os indicadores da tabela. Tabela vazia retorna todos os valores zerados,
// sem divisão por zero. Valores NaN ou ±Inf contam a venda mas ficam fora de somas, médias,
// mínimo e máximo; +Inf em txMeta conta como meta atingida.
func Summarize(table domain.SalesTable) domain.Metrics {
	count := len(table)
	if count == 0 {
		return domain.Metrics{}
	}

	total := decimal.Zero
	targetSum := decimal.Zero
	targets := 0
	var minTarget, maxTarget float64
	met := 0

	for _, r := range table {
		if domain.Finite(r.SaleAmount) {
			total = total.Add(decimal.NewFromFloat(r.SaleAmount))
		}

		if r.TargetMet() {
			met++
		}

		if !domain.Finite(r.TargetRate) {
			continue
		}

		targetSum = targetSum.Add(decimal.NewFromFloat(r.TargetRate))
		if targets == 0 || r.TargetRate < minTarget {
			minTarget = r.TargetRate
		}
		if targets == 0 || r.TargetRate > maxTarget {
			maxTarget = r.TargetRate
		}
		targets++
	}

	n := decimal.NewFromInt(int64(count))

	avgTarget := decimal.Zero
	if targets > 0 {
		avgTarget = targetSum.Div(decimal.NewFromInt(int64(targets)))
	}

	return domain.Metrics{
		TotalSales:        total.InexactFloat64(),
		AvgTargetRate:     avgTarget.InexactFloat64(),
		Count:             count,
		MinTarget:         minTarget,
		MaxTarget:         maxTarget,
		AvgTicket:         total.Div(n).InexactFloat64(),
		TargetsMetPercent: decimal.NewFromInt(int64(met)).Div(n).Mul(hundred).InexactFloat64(),
	}
}

// SummarizeByYear calcula um conjunto de indicadores para cada ano presente, em ordem crescente
func SummarizeByYear(table domain.SalesTable) []domain.YearMetrics {
	partitions := filtering.ByYear(table)

	out := make([]domain.YearMetrics, 0, len(partitions))
	for _, p := range partitions {
		out = append(out, domain.YearMetrics{
			Year:    p.Year,
			Metrics: Summarize(p.Table),
		})
	}

	return out
}

// Summary retorna os indicadores combinados e por ano
func Summary(table domain.SalesTable) domain.SalesSummary {
	return domain.SalesSummary{
		Combined: Summarize(table),
		ByYear:   SummarizeByYear(table),
	}
}
