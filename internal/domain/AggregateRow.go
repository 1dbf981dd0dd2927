package domain

import jsoniter "github.com/json-iterator/go"

// Measure identifica uma medida calculada por grupo
type Measure string

const (
	MeasureTotalSales Measure = "totalSales"
	MeasureAvgTarget  Measure = "avgTarget"
	MeasureCount      Measure = "count"
)

// AllMeasures é o conjunto padrão quando nenhuma medida é pedida
var AllMeasures = []Measure{MeasureTotalSales, MeasureAvgTarget, MeasureCount}

// IsValid indica se a medida é conhecida
func (m Measure) IsValid() bool {
	return m == MeasureTotalSales || m == MeasureAvgTarget || m == MeasureCount
}

// AggregateRow é uma linha de saída de um agrupamento
type AggregateRow struct {
	Key        GroupKey
	TotalSales float64
	AvgTarget  float64
	Count      int
	Measures   []Measure
}

// Has indica se a medida foi pedida para esta linha
func (r AggregateRow) Has(m Measure) bool {
	if len(r.Measures) == 0 {
		return true
	}
	for _, measure := range r.Measures {
		if measure == m {
			return true
		}
	}
	return false
}

// MarshalJSON gera um objeto plano com os campos da chave e as medidas pedidas
func (r AggregateRow) MarshalJSON() ([]byte, error) {
	fields := r.Key.Fields()

	if r.Has(MeasureTotalSales) {
		fields["total_sales"] = r.TotalSales
	}
	if r.Has(MeasureAvgTarget) {
		fields["avg_target"] = r.AvgTarget
	}
	if r.Has(MeasureCount) {
		fields["count"] = r.Count
	}

	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(fields)
}
