package domain

import (
	"math"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesRecord_MarshalJSON(t *testing.T) {
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		record SalesRecord
		want   string
	}{
		{
			name:   "valores finitos",
			record: SalesRecord{ID: 1, TaxID: "123", BranchName: "FILIAL RECIFE", SaleDate: day, SaleAmount: 10.5, TargetRate: 100},
			want:   `{"id":1,"tax_id":"123","branch_name":"FILIAL RECIFE","sale_date":"2024-01-08T00:00:00Z","sale_amount":10.5,"target_rate":100}`,
		},
		{
			name:   "NaN e +Inf viram null",
			record: SalesRecord{ID: 2, BranchName: "FILIAL RECIFE", SaleDate: day, SaleAmount: math.NaN(), TargetRate: math.Inf(1)},
			want:   `{"id":2,"tax_id":"","branch_name":"FILIAL RECIFE","sale_date":"2024-01-08T00:00:00Z","sale_amount":null,"target_rate":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(SalesTable{tt.record})
			require.NoError(t, err)
			assert.JSONEq(t, "["+tt.want+"]", string(data))
		})
	}
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite(0))
	assert.True(t, Finite(-12.5))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(1)))
	assert.False(t, Finite(math.Inf(-1)))
}
