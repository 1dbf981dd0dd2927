package domain

import "time"

// BranchDigest são os indicadores de uma filial no resumo mensal
type BranchDigest struct {
	BranchName string  `json:"branch_name"`
	Metrics    Metrics `json:"metrics"`
}

// SalesDigest é o resumo mensal publicado pelo agendador
type SalesDigest struct {
	ID          string              `json:"id"`
	Period      string              `json:"period"` // Formato mm-yyyy
	GeneratedAt time.Time           `json:"generated_at"`
	Metrics     Metrics             `json:"metrics"`
	Branches    []BranchDigest      `json:"branches"`
	Ranking     []BranchRankingItem `json:"ranking"`
}
