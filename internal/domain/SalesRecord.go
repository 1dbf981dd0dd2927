// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// TargetMetRate é a taxa de meta a partir da qual a venda é considerada dentro da meta
const TargetMetRate = 100.0

// SalesRecord representa uma venda da tabela tbVendasDashboard
type SalesRecord struct {
	ID         int64     `json:"id"`          // idVendas
	TaxID      string    `json:"tax_id"`      // nrCNPJ
	BranchName string    `json:"branch_name"` // nmFilial
	SaleDate   time.Time `json:"sale_date"`   // dtVenda, sempre sem horário (meia-noite UTC)
	SaleAmount float64   `json:"sale_amount"` // vlVenda
	TargetRate float64   `json:"target_rate"` // txMeta em porcentagem
}

// TargetMet indica se a venda atingiu a meta
func (r SalesRecord) TargetMet() bool {
	return r.TargetRate >= TargetMetRate
}

// Finite indica se o valor entra em somas, médias e no JSON (não é NaN nem ±Inf).
// As colunas NUMERIC do postgres aceitam 'NaN' e 'Infinity'.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON escreve null no lugar de valores não finitos, que o JSON não representa
func (r SalesRecord) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(struct {
		ID         int64     `json:"id"`
		TaxID      string    `json:"tax_id"`
		BranchName string    `json:"branch_name"`
		SaleDate   time.Time `json:"sale_date"`
		SaleAmount *float64  `json:"sale_amount"`
		TargetRate *float64  `json:"target_rate"`
	}{
		ID:         r.ID,
		TaxID:      r.TaxID,
		BranchName: r.BranchName,
		SaleDate:   r.SaleDate,
		SaleAmount: finiteOrNil(r.SaleAmount),
		TargetRate: finiteOrNil(r.TargetRate),
	})
}

func finiteOrNil(v float64) *float64 {
	if !Finite(v) {
		return nil
	}
	return &v
}

// SalesTable é a coleção de vendas sobre a qual filtros e agregações operam.
// Nenhuma operação altera a tabela recebida.
type SalesTable []SalesRecord

// Len retorna a quantidade de vendas
func (t SalesTable) Len() int {
	return len(t)
}

// Clone retorna uma cópia independente da tabela
func (t SalesTable) Clone() SalesTable {
	if t == nil {
		return SalesTable{}
	}

	out := make(SalesTable, len(t))
	copy(out, t)
	return out
}

// DateOnly normaliza uma data para meia-noite UTC, descartando horário e fuso
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
