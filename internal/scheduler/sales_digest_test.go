package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	messagingmocks "github.com/vfg2006/sales-dashboard-api/infrastructure/messaging/mocks"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func sale(id int64, branch string, d time.Time, amount, target float64) domain.SalesRecord {
	return domain.SalesRecord{ID: id, BranchName: branch, SaleDate: d, SaleAmount: amount, TargetRate: target}
}

func newTestService(
	salesRepo *mocks.MockSalesRepository,
	publisher *messagingmocks.MockDigestPublisher,
	now time.Time,
) *SalesDigestService {
	return &SalesDigestService{
		salesRepo: salesRepo,
		publisher: publisher,
		config:    SalesDigestConfig{CronSchedule: "0 6 1 * *", SyncEnabled: true},
		now:       func() time.Time { return now },
	}
}

// TestSalesDigestService_CronjobScenarios testa os diferentes cenários de execução do cronjob
func TestSalesDigestService_CronjobScenarios(t *testing.T) {
	tests := []struct {
		name          string
		executionDate time.Time
		wantStart     time.Time
		wantEnd       time.Time
		table         domain.SalesTable
		validate      func(t *testing.T, digest *domain.SalesDigest)
	}{
		{
			name:          "Execução no dia 1 - resume o mês anterior e compara com o mês antes dele",
			executionDate: time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
			wantStart:     day(2024, 1, 1),
			wantEnd:       day(2024, 2, 29),
			table: domain.SalesTable{
				sale(1, "FILIAL A", day(2024, 1, 10), 100, 90),
				sale(2, "FILIAL B", day(2024, 1, 11), 300, 100),
				sale(3, "FILIAL A", day(2024, 2, 5), 400, 120),
				sale(4, "FILIAL B", day(2024, 2, 6), 100, 80),
				sale(5, "FILIAL A", day(2024, 2, 29), 100, 100),
			},
			validate: func(t *testing.T, digest *domain.SalesDigest) {
				assert.Equal(t, "02-2024", digest.Period)
				assert.True(t, strings.HasPrefix(digest.ID, "dig_"))

				assert.Equal(t, 600.0, digest.Metrics.TotalSales)
				assert.Equal(t, 3, digest.Metrics.Count)
				assert.Equal(t, 200.0, digest.Metrics.AvgTicket)

				require.Len(t, digest.Branches, 2)
				assert.Equal(t, "FILIAL A", digest.Branches[0].BranchName)
				assert.Equal(t, 500.0, digest.Branches[0].Metrics.TotalSales)
				assert.Equal(t, 100.0, digest.Branches[0].Metrics.TargetsMetPercent)
				assert.Equal(t, 0.0, digest.Branches[1].Metrics.TargetsMetPercent)

				require.Len(t, digest.Ranking, 2)
				assert.Equal(t, "FILIAL A", digest.Ranking[0].BranchName)
				assert.Equal(t, 1, digest.Ranking[0].PositionChange)
				assert.Equal(t, 2, digest.Ranking[0].PreviousPosition)
				assert.Equal(t, -1, digest.Ranking[1].PositionChange)
			},
		},
		{
			name:          "Execução em janeiro - resume dezembro do ano anterior",
			executionDate: time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC),
			wantStart:     day(2024, 11, 1),
			wantEnd:       day(2024, 12, 31),
			table: domain.SalesTable{
				sale(1, "FILIAL A", day(2024, 12, 31), 250, 100),
			},
			validate: func(t *testing.T, digest *domain.SalesDigest) {
				assert.Equal(t, "12-2024", digest.Period)
				assert.Equal(t, 250.0, digest.Metrics.TotalSales)
				require.Len(t, digest.Ranking, 1)
				assert.Equal(t, 0, digest.Ranking[0].PreviousPosition)
			},
		},
		{
			name:          "Execução no fim do mês - não pula fevereiro",
			executionDate: time.Date(2024, 3, 31, 6, 0, 0, 0, time.UTC),
			wantStart:     day(2024, 1, 1),
			wantEnd:       day(2024, 2, 29),
			table:         domain.SalesTable{},
			validate: func(t *testing.T, digest *domain.SalesDigest) {
				assert.Equal(t, "02-2024", digest.Period)
				assert.Zero(t, digest.Metrics.Count)
				assert.Zero(t, digest.Metrics.AvgTicket)
				assert.Empty(t, digest.Branches)
				assert.Empty(t, digest.Ranking)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			salesRepo := mocks.NewMockSalesRepository(ctrl)
			publisher := messagingmocks.NewMockDigestPublisher(ctrl)
			service := newTestService(salesRepo, publisher, tt.executionDate)

			salesRepo.EXPECT().
				ListSalesBetween(gomock.Any(), tt.wantStart, tt.wantEnd).
				Return(tt.table, nil)

			var published *domain.SalesDigest
			publisher.EXPECT().
				PublishDigest(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, digest *domain.SalesDigest) error {
					published = digest
					return nil
				})

			require.NoError(t, service.GenerateDigest(context.Background()))
			require.NotNil(t, published)
			tt.validate(t, published)

			status := service.GetStatus()
			assert.Equal(t, published.Period, status["last_period"])
			assert.Equal(t, published.ID, status["last_digest_id"])
			assert.Nil(t, status["last_error"])
			assert.Equal(t, false, status["running"])
		})
	}
}

func TestSalesDigestService_Errors(t *testing.T) {
	t.Run("falha na base não publica", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		salesRepo := mocks.NewMockSalesRepository(ctrl)
		publisher := messagingmocks.NewMockDigestPublisher(ctrl)
		service := newTestService(salesRepo, publisher, day(2024, 3, 1))

		salesRepo.EXPECT().ListSalesBetween(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		err := service.GenerateDigest(context.Background())
		require.Error(t, err)
		lastError, ok := service.GetStatus()["last_error"].(*apiErrors.APIError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, lastError.Code)
		assert.Contains(t, lastError.Message, "connection refused")
		assert.False(t, service.IsRunning())
	})

	t.Run("falha na publicação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		salesRepo := mocks.NewMockSalesRepository(ctrl)
		publisher := messagingmocks.NewMockDigestPublisher(ctrl)
		service := newTestService(salesRepo, publisher, day(2024, 3, 1))

		salesRepo.EXPECT().ListSalesBetween(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.SalesTable{}, nil)
		publisher.EXPECT().PublishDigest(gomock.Any(), gomock.Any()).
			Return(errors.New("canal fechado"))

		err := service.GenerateDigest(context.Background())
		require.Error(t, err)

		status := service.GetStatus()
		assert.Equal(t, "", status["last_period"])
		lastError, ok := status["last_error"].(*apiErrors.APIError)
		require.True(t, ok)
		assert.Equal(t, apiErrors.ErrExternalService, lastError.Code)
		assert.Contains(t, lastError.Message, "canal fechado")
	})
}

func TestSalesDigestService_IgnoresOverlappingRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	salesRepo := mocks.NewMockSalesRepository(ctrl)
	publisher := messagingmocks.NewMockDigestPublisher(ctrl)
	service := newTestService(salesRepo, publisher, day(2024, 3, 1))

	// Simula uma execução em andamento: nenhuma chamada aos mocks é esperada
	require.True(t, service.begin())
	assert.True(t, service.IsRunning())

	require.NoError(t, service.GenerateDigest(context.Background()))
	service.TriggerManualSync()

	service.finish(nil, "", errors.New("interrompido"))
	assert.False(t, service.IsRunning())
}

func TestSalesDigestService_StartDisabled(t *testing.T) {
	service := &SalesDigestService{config: SalesDigestConfig{SyncEnabled: false}}
	assert.NoError(t, service.Start(context.Background()))
}
