package reporting

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// SalesLister lista as vendas filtradas
type SalesLister interface {
	// ListSales retorna as vendas filtradas, da mais recente para a mais antiga
	ListSales(ctx context.Context, filter domain.SalesFilter) (domain.SalesTable, error)
}

// SalesAggregator agrupa as vendas filtradas por dimensões
type SalesAggregator interface {
	// Aggregate agrupa as vendas filtradas pelas dimensões na ordem informada
	Aggregate(ctx context.Context, filter domain.SalesFilter, dims []domain.Dimension, measures []domain.Measure) ([]domain.AggregateRow, error)
}

// SalesSummarizer calcula os indicadores das vendas filtradas
type SalesSummarizer interface {
	// Summarize retorna os indicadores do conjunto filtrado e de cada ano presente
	Summarize(ctx context.Context, filter domain.SalesFilter) (*domain.SalesSummary, error)
}

// Reporter é a interface completa usada pela API
type Reporter interface {
	SalesLister
	SalesAggregator
	SalesSummarizer

	// GetAvailableFilters retorna as opções de filtro presentes na base, sem filtro aplicado
	GetAvailableFilters(ctx context.Context) (*domain.AvailableFilters, error)

	// GetDashboard monta todas as visões do painel para o filtro
	GetDashboard(ctx context.Context, filter domain.SalesFilter) (*domain.Dashboard, error)
}
