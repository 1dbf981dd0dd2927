// Package aggregating agrupa vendas por filial e por recortes de tempo.
//
// Pipeline: derivar chave → agrupar → medir → ordenar. As funções são puras e podem
// ser chamadas concorrentemente sobre a mesma tabela.
package aggregating

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var (
	ErrUnknownDimension   = errors.New("dimensão de agrupamento desconhecida")
	ErrDuplicateDimension = errors.New("dimensão de agrupamento repetida")
	ErrUnknownMeasure     = errors.New("medida desconhecida")
)

// group acumula as medidas de uma chave
type group struct {
	key       domain.GroupKey
	total     decimal.Decimal
	targetSum decimal.Decimal
	targets   int
	count     int
}

// Aggregate agrupa a tabela pelas dimensões na ordem informada e calcula as medidas pedidas
// (todas quando nenhuma é informada). A saída é ordenada de forma crescente pela chave.
// Cada combinação de chave presente na entrada gera exatamente uma linha.
func Aggregate(table domain.SalesTable, dims []domain.Dimension, measures ...domain.Measure) ([]domain.AggregateRow, error) {
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	for _, m := range measures {
		if !m.IsValid() {
			return nil, errors.Wrapf(ErrUnknownMeasure, "%q", m)
		}
	}

	groups := make(map[string]*group)
	for _, r := range table {
		key := make(domain.GroupKey, len(dims))
		for i, d := range dims {
			key[i] = domain.KeyValueOf(d, r)
		}

		id := key.String()
		g, ok := groups[id]
		if !ok {
			g = &group{key: key}
			groups[id] = g
		}

		// NaN e ±Inf não entram nas somas; a venda continua contada
		if domain.Finite(r.SaleAmount) {
			g.total = g.total.Add(decimal.NewFromFloat(r.SaleAmount))
		}
		if domain.Finite(r.TargetRate) {
			g.targetSum = g.targetSum.Add(decimal.NewFromFloat(r.TargetRate))
			g.targets++
		}
		g.count++
	}

	rows := make([]domain.AggregateRow, 0, len(groups))
	for _, g := range groups {
		avgTarget := decimal.Zero
		if g.targets > 0 {
			avgTarget = g.targetSum.Div(decimal.NewFromInt(int64(g.targets)))
		}

		rows = append(rows, domain.AggregateRow{
			Key:        g.key,
			TotalSales: g.total.InexactFloat64(),
			AvgTarget:  avgTarget.InexactFloat64(),
			Count:      g.count,
			Measures:   measures,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.Compare(rows[j].Key) < 0
	})

	return rows, nil
}

// MustAggregate é Aggregate para dimensões fixas no código; entra em pânico se alguma for inválida
func MustAggregate(table domain.SalesTable, dims ...domain.Dimension) []domain.AggregateRow {
	rows, err := Aggregate(table, dims)
	if err != nil {
		panic(err)
	}
	return rows
}

// ParseDimensions converte "branch,month" na lista de dimensões
func ParseDimensions(value string) ([]domain.Dimension, error) {
	parts := splitList(value)
	dims := make([]domain.Dimension, 0, len(parts))
	for _, p := range parts {
		dims = append(dims, domain.Dimension(p))
	}

	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	return dims, nil
}

// validateDimensions recusa dimensões desconhecidas ou repetidas
func validateDimensions(dims []domain.Dimension) error {
	seen := make(map[domain.Dimension]struct{}, len(dims))
	for _, d := range dims {
		if !d.IsValid() {
			return errors.Wrapf(ErrUnknownDimension, "%q", d)
		}
		if _, ok := seen[d]; ok {
			return errors.Wrapf(ErrDuplicateDimension, "%q", d)
		}
		seen[d] = struct{}{}
	}
	return nil
}

// ParseMeasures converte "totalSales,count" na lista de medidas
func ParseMeasures(value string) ([]domain.Measure, error) {
	parts := splitList(value)
	measures := make([]domain.Measure, 0, len(parts))
	for _, p := range parts {
		m := domain.Measure(p)
		if !m.IsValid() {
			return nil, errors.Wrapf(ErrUnknownMeasure, "%q", p)
		}
		measures = append(measures, m)
	}
	return measures, nil
}

func splitList(value string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(value, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
