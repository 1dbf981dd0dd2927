package domain

import (
	"fmt"
	"strings"
	"time"
)

// Dimension identifica uma chave de agrupamento derivada da venda
type Dimension string

const (
	DimensionBranch    Dimension = "branch"
	DimensionYear      Dimension = "year"
	DimensionMonth     Dimension = "month"
	DimensionWeek      Dimension = "week"
	DimensionWeekday   Dimension = "weekday"
	DimensionYearMonth Dimension = "yearMonth"
	DimensionYearWeek  Dimension = "yearWeek"
)

// Dimensions lista todas as dimensões suportadas
var Dimensions = []Dimension{
	DimensionBranch,
	DimensionYear,
	DimensionMonth,
	DimensionWeek,
	DimensionWeekday,
	DimensionYearMonth,
	DimensionYearWeek,
}

// WeekdayNames usa ordem fixa começando na segunda-feira (0=Monday ... 6=Sunday),
// independente do locale do servidor
var WeekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// IsValid indica se a dimensão é conhecida
func (d Dimension) IsValid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// IsText indica se a dimensão é comparada pelo rótulo e não pelo número
func (d Dimension) IsText() bool {
	return d == DimensionBranch || d == DimensionYearMonth || d == DimensionYearWeek
}

// WeekdayIndex retorna o dia da semana com segunda-feira = 0
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ISOWeek retorna o número da semana ISO 8601 (1-53). É a única convenção de semana usada no sistema.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// YearMonthLabel retorna o rótulo "YYYY-MM"
func YearMonthLabel(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// YearWeekLabel retorna o rótulo "YYYY-Www" usando o ano ISO
func YearWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// KeyValue é o valor de uma dimensão para um grupo
type KeyValue struct {
	Dimension Dimension
	Number    int    // ano, mês, semana ou índice do dia da semana
	Label     string // filial, "YYYY-MM", "YYYY-Www" ou nome do dia da semana
}

// KeyValueOf deriva o valor da dimensão para uma venda
func KeyValueOf(d Dimension, r SalesRecord) KeyValue {
	date := r.SaleDate

	switch d {
	case DimensionBranch:
		return KeyValue{Dimension: d, Label: r.BranchName}
	case DimensionYear:
		return KeyValue{Dimension: d, Number: date.Year()}
	case DimensionMonth:
		return KeyValue{Dimension: d, Number: int(date.Month())}
	case DimensionWeek:
		return KeyValue{Dimension: d, Number: ISOWeek(date)}
	case DimensionWeekday:
		idx := WeekdayIndex(date)
		return KeyValue{Dimension: d, Number: idx, Label: WeekdayNames[idx]}
	case DimensionYearMonth:
		return KeyValue{Dimension: d, Label: YearMonthLabel(date)}
	case DimensionYearWeek:
		return KeyValue{Dimension: d, Label: YearWeekLabel(date)}
	}

	return KeyValue{Dimension: d}
}

// Compare ordena dois valores da mesma dimensão
func (k KeyValue) Compare(other KeyValue) int {
	if k.Dimension.IsText() {
		switch {
		case k.Label < other.Label:
			return -1
		case k.Label > other.Label:
			return 1
		}
		return 0
	}

	switch {
	case k.Number < other.Number:
		return -1
	case k.Number > other.Number:
		return 1
	}
	return 0
}

// GroupKey é a chave composta de um grupo, na ordem das dimensões pedidas
type GroupKey []KeyValue

// Compare ordena chaves lexicograficamente, a primeira dimensão é a principal
func (g GroupKey) Compare(other GroupKey) int {
	for i := 0; i < len(g) && i < len(other); i++ {
		if c := g[i].Compare(other[i]); c != 0 {
			return c
		}
	}
	return len(g) - len(other)
}

// String gera uma representação estável usada como chave de mapa
func (g GroupKey) String() string {
	var b strings.Builder
	for i, kv := range g {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%s=%d:%s", kv.Dimension, kv.Number, kv.Label)
	}
	return b.String()
}

// Get retorna o valor de uma dimensão da chave
func (g GroupKey) Get(d Dimension) (KeyValue, bool) {
	for _, kv := range g {
		if kv.Dimension == d {
			return kv, true
		}
	}
	return KeyValue{}, false
}

// Fields converte a chave para os campos do JSON de saída
func (g GroupKey) Fields() map[string]any {
	fields := make(map[string]any, len(g)+1)
	for _, kv := range g {
		switch kv.Dimension {
		case DimensionBranch:
			fields["branch"] = kv.Label
		case DimensionYear:
			fields["year"] = kv.Number
		case DimensionMonth:
			fields["month"] = kv.Number
		case DimensionWeek:
			fields["week"] = kv.Number
		case DimensionWeekday:
			fields["weekday"] = kv.Number
			fields["weekday_name"] = kv.Label
		case DimensionYearMonth:
			fields["year_month"] = kv.Label
		case DimensionYearWeek:
			fields["year_week"] = kv.Label
		}
	}
	return fields
}
