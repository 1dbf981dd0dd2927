// Package ranking ordena as filiais pelo total vendido no mês
package ranking

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
)

// ErrInvalidPeriod indica mês fora de 1..12 ou ano não informado
var ErrInvalidPeriod = errors.New("período inválido")

type RankingService interface {
	GetBranchRanking(ctx context.Context, year int, month time.Month) ([]domain.BranchRankingItem, error)
}

type BranchRankingService struct {
	salesRepository repository.SalesRepository
}

func NewBranchRankingService(salesRepository repository.SalesRepository) RankingService {
	return &BranchRankingService{
		salesRepository: salesRepository,
	}
}

// GetBranchRanking calcula o ranking do mês comparando com o mês anterior
func (s *BranchRankingService) GetBranchRanking(ctx context.Context, year int, month time.Month) ([]domain.BranchRankingItem, error) {
	if year <= 0 || month < time.January || month > time.December {
		return nil, errors.Wrapf(ErrInvalidPeriod, "%d-%d", year, month)
	}

	start := FirstDayOfMonth(year, month)
	previousStart := start.AddDate(0, -1, 0)
	end := start.AddDate(0, 1, -1)

	table, err := s.salesRepository.ListSalesBetween(ctx, previousStart, end)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas para o ranking")
	}

	return RankMonth(table, year, month), nil
}

// RankMonth ranqueia as filiais no mês informado usando o mês anterior como referência de posição
func RankMonth(table domain.SalesTable, year int, month time.Month) []domain.BranchRankingItem {
	start := FirstDayOfMonth(year, month)
	previousStart := start.AddDate(0, -1, 0)

	current := monthTable(table, start)
	previous := monthTable(table, previousStart)

	previousRanking := RankBranches(previous, domain.Period(previousStart.Year(), previousStart.Month()), nil)
	return RankBranches(current, domain.Period(year, month), previousRanking)
}

// RankBranches ordena as filiais pelo total vendido (desc, empate pelo nome) e atribui posições a partir de 1.
// Com o ranking anterior preenche a variação e a posição anterior.
func RankBranches(table domain.SalesTable, period string, previous []domain.BranchRankingItem) []domain.BranchRankingItem {
	rows := aggregating.MustAggregate(table, domain.DimensionBranch)

	rankings := make([]*domain.BranchRankingItem, 0, len(rows))
	for _, row := range rows {
		kv, _ := row.Key.Get(domain.DimensionBranch)
		rankings = append(rankings, &domain.BranchRankingItem{
			BranchName: kv.Label,
			Period:     period,
			TotalSales: row.TotalSales,
			Count:      row.Count,
		})
	}

	rankingsBefore := make(map[string]*domain.BranchRankingItem, len(previous))
	for i := range previous {
		rankingsBefore[previous[i].BranchName] = &previous[i]
	}

	updatePositions(rankings, rankingsBefore)

	out := make([]domain.BranchRankingItem, 0, len(rankings))
	for _, r := range rankings {
		out = append(out, *r)
	}
	return out
}

func updatePositions(
	updatedRankings []*domain.BranchRankingItem,
	rankingsBeforeUpdate map[string]*domain.BranchRankingItem,
) {
	sort.SliceStable(updatedRankings, func(i, j int) bool {
		if updatedRankings[i].TotalSales != updatedRankings[j].TotalSales {
			return updatedRankings[i].TotalSales > updatedRankings[j].TotalSales
		}
		return updatedRankings[i].BranchName < updatedRankings[j].BranchName
	})

	for i, ranking := range updatedRankings {
		ranking.Position = i + 1

		rankingBefore, exists := rankingsBeforeUpdate[ranking.BranchName]
		if exists {
			ranking.PositionChange = rankingBefore.Position - ranking.Position
			ranking.PreviousPosition = rankingBefore.Position
		}
	}
}

// FirstDayOfMonth retorna o primeiro dia do mês em UTC
func FirstDayOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthTable(table domain.SalesTable, start time.Time) domain.SalesTable {
	end := start.AddDate(0, 1, -1)

	return filtering.New(filtering.EmptySelectionIgnore).Filter(table, domain.SalesFilter{
		StartDate: &start,
		EndDate:   &end,
	})
}
