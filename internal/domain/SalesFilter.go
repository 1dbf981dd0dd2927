package domain

import "time"

// SalesFilter são as seleções do usuário aplicadas antes das agregações
type SalesFilter struct {
	Branches  []string   `json:"branches"`
	Months    []int      `json:"months"`
	Years     []int      `json:"years,omitempty"` // opcional, vazio não restringe
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// AllMonths retorna os meses de 1 a 12
func AllMonths() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

// AvailableFilters são as opções de filtro presentes na base
type AvailableFilters struct {
	Branches []string `json:"branches"`
	Months   []int    `json:"months"`
	Years    []int    `json:"years"`
	Weeks    []int    `json:"weeks"`
}
