// Package filtering restringe a tabela de vendas pelas seleções do usuário antes das agregações
package filtering

import (
	"fmt"
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// EmptySelectionPolicy define o que fazer quando a seleção de filiais ou meses está vazia
type EmptySelectionPolicy string

const (
	// EmptySelectionNoData trata seleção vazia como "sem dados" (padrão)
	EmptySelectionNoData EmptySelectionPolicy = "empty"
	// EmptySelectionIgnore trata seleção vazia como "sem restrição"
	EmptySelectionIgnore EmptySelectionPolicy = "all"
)

// ParsePolicy converte o valor de configuração em uma política
func ParsePolicy(value string) (EmptySelectionPolicy, error) {
	switch EmptySelectionPolicy(value) {
	case "", EmptySelectionNoData:
		return EmptySelectionNoData, nil
	case EmptySelectionIgnore:
		return EmptySelectionIgnore, nil
	}
	return "", fmt.Errorf("política de seleção vazia inválida: %q (use %q ou %q)", value, EmptySelectionNoData, EmptySelectionIgnore)
}

// Filterer aplica o filtro de filial, mês, ano e período
type Filterer struct {
	policy EmptySelectionPolicy
}

// New cria um Filterer com a política informada
func New(policy EmptySelectionPolicy) *Filterer {
	if policy == "" {
		policy = EmptySelectionNoData
	}
	return &Filterer{policy: policy}
}

// Policy retorna a política de seleção vazia em uso
func (f *Filterer) Policy() EmptySelectionPolicy {
	return f.policy
}

// Filter retorna uma nova tabela somente com as vendas cuja filial está em Branches,
// cujo mês está em Months e, quando informados, cujo ano está em Years e cuja data está
// dentro de [StartDate, EndDate]. A tabela recebida não é alterada.
func (f *Filterer) Filter(table domain.SalesTable, filter domain.SalesFilter) domain.SalesTable {
	if f.policy == EmptySelectionNoData && (len(filter.Branches) == 0 || len(filter.Months) == 0) {
		return domain.SalesTable{}
	}

	branches := make(map[string]struct{}, len(filter.Branches))
	for _, b := range filter.Branches {
		branches[b] = struct{}{}
	}
	months := intSet(filter.Months)
	years := intSet(filter.Years)

	var start, end *int64
	if filter.StartDate != nil {
		v := domain.DateOnly(*filter.StartDate).Unix()
		start = &v
	}
	if filter.EndDate != nil {
		v := domain.DateOnly(*filter.EndDate).Unix()
		end = &v
	}

	out := make(domain.SalesTable, 0, len(table))
	for _, r := range table {
		if len(branches) > 0 {
			if _, ok := branches[r.BranchName]; !ok {
				continue
			}
		}
		if len(months) > 0 {
			if _, ok := months[int(r.SaleDate.Month())]; !ok {
				continue
			}
		}
		if len(years) > 0 {
			if _, ok := years[r.SaleDate.Year()]; !ok {
				continue
			}
		}

		day := domain.DateOnly(r.SaleDate).Unix()
		if start != nil && day < *start {
			continue
		}
		if end != nil && day > *end {
			continue
		}

		out = append(out, r)
	}

	return out
}

func intSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// YearPartition é a fatia da tabela pertencente a um ano
type YearPartition struct {
	Year  int
	Table domain.SalesTable
}

// ByYear particiona a tabela por ano, em ordem crescente
func ByYear(table domain.SalesTable) []YearPartition {
	byYear := make(map[int]domain.SalesTable)
	for _, r := range table {
		year := r.SaleDate.Year()
		byYear[year] = append(byYear[year], r)
	}

	partitions := make([]YearPartition, 0, len(byYear))
	for year, t := range byYear {
		partitions = append(partitions, YearPartition{Year: year, Table: t})
	}

	sort.Slice(partitions, func(i, j int) bool {
		return partitions[i].Year < partitions[j].Year
	})

	return partitions
}

// Available lista as opções de filtro presentes na tabela
func Available(table domain.SalesTable) domain.AvailableFilters {
	branchSet := make(map[string]struct{})
	yearSet := make(map[int]struct{})
	weekSet := make(map[int]struct{})

	for _, r := range table {
		branchSet[r.BranchName] = struct{}{}
		yearSet[r.SaleDate.Year()] = struct{}{}
		weekSet[domain.ISOWeek(r.SaleDate)] = struct{}{}
	}

	branches := make([]string, 0, len(branchSet))
	for b := range branchSet {
		branches = append(branches, b)
	}
	sort.Strings(branches)

	return domain.AvailableFilters{
		Branches: branches,
		Months:   domain.AllMonths(),
		Years:    sortedInts(yearSet),
		Weeks:    sortedInts(weekSet),
	}
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
