package locating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type staticSource struct {
	coords []domain.BranchCoordinate
	err    error
}

func (s staticSource) ListCoordinates(context.Context) ([]domain.BranchCoordinate, error) {
	return s.coords, s.err
}

var coords = []domain.BranchCoordinate{
	{BranchName: "FILIAL CURITIBA", Latitude: -25.4284, Longitude: -49.2733},
	{BranchName: "FILIAL SÃO LUÍS", Latitude: -2.5307, Longitude: -44.3028},
	{BranchName: "FILIAL SÃO PAULO", Latitude: -23.5505, Longitude: -46.6333},
}

func TestLocator_Coordinates(t *testing.T) {
	l := NewLocator(staticSource{coords: coords})
	ctx := context.Background()

	tests := []struct {
		name     string
		branches []string
		want     []string
	}{
		{
			name:     "Sem seleção retorna todas as filiais",
			branches: nil,
			want:     []string{"FILIAL CURITIBA", "FILIAL SÃO LUÍS", "FILIAL SÃO PAULO"},
		},
		{
			name:     "Seleção vazia retorna nenhuma filial",
			branches: []string{},
			want:     []string{},
		},
		{
			name:     "Comparação ignora acentos e caixa",
			branches: []string{"filial sao paulo", "FILIAL  CURITIBA"},
			want:     []string{"FILIAL CURITIBA", "FILIAL SÃO PAULO"},
		},
		{
			name:     "Filial sem coordenada é ignorada",
			branches: []string{"FILIAL MANAUS"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Coordinates(ctx, tt.branches)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.BranchName)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestLocator_SourceError(t *testing.T) {
	l := NewLocator(staticSource{err: errors.New("conexão recusada")})

	_, err := l.Coordinates(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexão recusada")
}

func TestNormalizeBranchName(t *testing.T) {
	assert.Equal(t, "FILIAL SAO LUIS", NormalizeBranchName(" Filial São Luís "))
	assert.Equal(t, "FILIAL GOIANIA", NormalizeBranchName("FILIAL GOIÂNIA"))
	assert.Equal(t, "FILIAL SAO GONCALO", NormalizeBranchName("FILIAL SÃO GONÇALO"))
}
