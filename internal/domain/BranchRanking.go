package domain

import (
	"fmt"
	"time"
)

// BranchRankingItem é a posição de uma filial no ranking de vendas do mês
type BranchRankingItem struct {
	BranchName       string  `json:"branch_name"`
	Period           string  `json:"period"` // Formato mm-yyyy (ex: 01-2024)
	TotalSales       float64 `json:"total_sales"`
	Count            int     `json:"count"`
	Position         int     `json:"position"`
	PositionChange   int     `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int     `json:"previous_position"`
}

// Period retorna o período no formato mm-yyyy
func Period(year int, month time.Month) string {
	return fmt.Sprintf("%02d-%04d", int(month), year)
}
