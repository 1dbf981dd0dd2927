// Package reporting monta as visões do dashboard: lê as vendas, aplica o filtro e agrega
package reporting

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/locating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/summarizing"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidFilter indica mês fora de 1..12 ou período com início depois do fim
	ErrInvalidFilter = errors.New("filtro inválido")
	// ErrSourceUnavailable indica falha na leitura das vendas
	ErrSourceUnavailable = errors.New("erro ao ler as vendas")
	// ErrViewFailed indica panic recuperado ao montar uma visão do dashboard
	ErrViewFailed = errors.New("erro interno ao montar visão do dashboard")
)

// Service implementa Reporter. Cada chamada relê a base, sem cache.
type Service struct {
	salesRepository repository.SalesRepository
	locator         locating.Locator
	filterer        *filtering.Filterer
}

// NewService cria uma nova instância do serviço de relatórios
func NewService(
	salesRepository repository.SalesRepository,
	locator locating.Locator,
	filterer *filtering.Filterer,
) Reporter {
	return &Service{
		salesRepository: salesRepository,
		locator:         locator,
		filterer:        filterer,
	}
}

func (s *Service) ListSales(ctx context.Context, filter domain.SalesFilter) (domain.SalesTable, error) {
	table, _, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	return sortRecent(table), nil
}

func (s *Service) Aggregate(
	ctx context.Context,
	filter domain.SalesFilter,
	dims []domain.Dimension,
	measures []domain.Measure,
) ([]domain.AggregateRow, error) {
	table, _, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := aggregating.Aggregate(table, dims, measures...)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFilter, err.Error())
	}

	return rows, nil
}

func (s *Service) Summarize(ctx context.Context, filter domain.SalesFilter) (*domain.SalesSummary, error) {
	table, _, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := summarizing.Summary(table)
	return &summary, nil
}

func (s *Service) GetAvailableFilters(ctx context.Context) (*domain.AvailableFilters, error) {
	table, err := s.salesRepository.ListSales(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrSourceUnavailable, err.Error())
	}

	available := filtering.Available(table)
	return &available, nil
}

func (s *Service) GetDashboard(ctx context.Context, filter domain.SalesFilter) (*domain.Dashboard, error) {
	table, resolved, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"records":  table.Len(),
		"branches": len(resolved.Branches),
		"months":   len(resolved.Months),
	}).Debug("dashboard: montando visões")

	dashboard := &domain.Dashboard{Filters: resolved}

	// A tabela filtrada não é alterada por nenhuma visão, por isso pode ser compartilhada
	g, gctx := errgroup.WithContext(ctx)

	goSafe(g, func() error {
		summary := summarizing.Summary(table)
		dashboard.Metrics = summary.Combined
		dashboard.MetricsByYear = summary.ByYear
		return nil
	})

	views := []struct {
		target *[]domain.AggregateRow
		dims   []domain.Dimension
	}{
		{&dashboard.MonthlyByYear, []domain.Dimension{domain.DimensionYear, domain.DimensionMonth}},
		{&dashboard.MonthlyTrend, []domain.Dimension{domain.DimensionYearMonth}},
		{&dashboard.WeeklyTrend, []domain.Dimension{domain.DimensionYearWeek}},
		{&dashboard.ByWeekday, []domain.Dimension{domain.DimensionWeekday}},
		{&dashboard.BranchMonthly, []domain.Dimension{domain.DimensionBranch, domain.DimensionMonth}},
		{&dashboard.ByBranch, []domain.Dimension{domain.DimensionBranch}},
	}

	for _, view := range views {
		view := view
		goSafe(g, func() error {
			rows, err := aggregating.Aggregate(table, view.dims)
			if err != nil {
				return err
			}
			*view.target = rows
			return nil
		})
	}

	goSafe(g, func() error {
		coordinates, err := s.locator.Coordinates(gctx, s.coordinateSelection(resolved))
		if err != nil {
			return err
		}
		dashboard.Coordinates = coordinates
		return nil
	})

	goSafe(g, func() error {
		dashboard.Records = sortRecent(table)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "erro ao montar o dashboard")
	}

	return dashboard, nil
}

// goSafe converte panic da visão em erro: um panic numa goroutine do errgroup
// não chega ao middleware de recuperação e derruba o processo
func goSafe(g *errgroup.Group, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithField("panic", r).Error("dashboard: panic ao montar visão")
				err = errors.Wrapf(ErrViewFailed, "%v", r)
			}
		}()
		return fn()
	})
}

// load lê as vendas, resolve as seleções ausentes e aplica o filtro
func (s *Service) load(ctx context.Context, filter domain.SalesFilter) (domain.SalesTable, domain.SalesFilter, error) {
	if err := Validate(filter); err != nil {
		return nil, filter, err
	}

	table, err := s.salesRepository.ListSales(ctx)
	if err != nil {
		return nil, filter, errors.Wrap(ErrSourceUnavailable, err.Error())
	}

	resolved := Resolve(table, filter)
	return s.filterer.Filter(table, resolved), resolved, nil
}

// coordinateSelection devolve nil (todas as filiais) quando a seleção vazia não restringe.
// Com a política "empty", filial ou mês vazio não mostra nenhuma filial no mapa.
func (s *Service) coordinateSelection(filter domain.SalesFilter) []string {
	if s.filterer.Policy() == filtering.EmptySelectionNoData {
		if len(filter.Branches) == 0 || len(filter.Months) == 0 {
			return []string{}
		}
		return filter.Branches
	}

	if len(filter.Branches) == 0 {
		return nil
	}
	return filter.Branches
}

// Resolve troca seleções ausentes (nil) por "todas": as filiais presentes na base e os meses 1..12.
// Seleções presentes e vazias são mantidas e seguem a política de seleção vazia.
func Resolve(table domain.SalesTable, filter domain.SalesFilter) domain.SalesFilter {
	resolved := filter

	if filter.Branches == nil {
		resolved.Branches = filtering.Available(table).Branches
	}
	if filter.Months == nil {
		resolved.Months = domain.AllMonths()
	}

	return resolved
}

// Validate recusa meses fora de 1..12 e períodos invertidos
func Validate(filter domain.SalesFilter) error {
	for _, m := range filter.Months {
		if m < 1 || m > 12 {
			return errors.Wrapf(ErrInvalidFilter, "mês fora do intervalo: %d", m)
		}
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return errors.Wrap(ErrInvalidFilter, "data inicial posterior à data final")
	}

	return nil
}

// sortRecent retorna uma cópia ordenada da venda mais recente para a mais antiga
func sortRecent(table domain.SalesTable) domain.SalesTable {
	out := table.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
