// Package locating resolve as coordenadas das filiais para o mapa
package locating

import (
	"context"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CoordinateSource fornece a tabela estática de coordenadas das filiais
type CoordinateSource interface {
	ListCoordinates(ctx context.Context) ([]domain.BranchCoordinate, error)
}

// Locator filtra as coordenadas pelas filiais selecionadas
type Locator interface {
	Coordinates(ctx context.Context, branches []string) ([]domain.BranchCoordinate, error)
}

type locator struct {
	source CoordinateSource
}

// NewLocator cria um Locator sobre a fonte de coordenadas injetada
func NewLocator(source CoordinateSource) Locator {
	return &locator{source: source}
}

// Coordinates retorna as coordenadas das filiais informadas, na ordem da fonte.
// Com branches nulo retorna todas. A comparação ignora caixa e acentos.
func (l *locator) Coordinates(ctx context.Context, branches []string) ([]domain.BranchCoordinate, error) {
	all, err := l.source.ListCoordinates(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar coordenadas das filiais")
	}

	return FilterCoordinates(all, branches), nil
}

// FilterCoordinates mantém apenas as coordenadas cujo nome normalizado está na seleção
func FilterCoordinates(all []domain.BranchCoordinate, branches []string) []domain.BranchCoordinate {
	if branches == nil {
		out := make([]domain.BranchCoordinate, len(all))
		copy(out, all)
		return out
	}

	selected := make(map[string]struct{}, len(branches))
	for _, b := range branches {
		selected[NormalizeBranchName(b)] = struct{}{}
	}

	out := make([]domain.BranchCoordinate, 0, len(branches))
	for _, c := range all {
		if _, ok := selected[NormalizeBranchName(c.BranchName)]; ok {
			out = append(out, c)
		}
	}

	return out
}

// NormalizeBranchName remove acentos, espaços extras e caixa: "Filial São Luís " -> "FILIAL SAO LUIS"
func NormalizeBranchName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	return strings.ToUpper(strings.Join(strings.Fields(stripped), " "))
}
