// Package scheduler contém os serviços agendados da API
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type SalesDigestConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SalesDigestService gera o resumo de vendas do mês anterior e publica no broker
type SalesDigestService struct {
	scheduler           *gocron.Scheduler
	salesRepo           repository.SalesRepository
	publisher           messaging.DigestPublisher
	config              SalesDigestConfig
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastPeriod          string
	lastDigestID        string
	lastError           *apiErrors.APIError
}

func NewSalesDigestService(
	salesRepo repository.SalesRepository,
	publisher messaging.DigestPublisher,
	cfg *config.Config,
) *SalesDigestService {
	digestConfig := SalesDigestConfig{
		CronSchedule: cfg.SalesDigest.CronSchedule, // Default: dia 1 às 6h da manhã
		SyncEnabled:  cfg.SalesDigest.Enabled,      // Default: desabilitado
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
	}).Info("Configuração do agendador do resumo de vendas carregada")

	return &SalesDigestService{
		scheduler: gocron.NewScheduler(time.Local),
		salesRepo: salesRepo,
		publisher: publisher,
		config:    digestConfig,
		now:       time.Now,
	}
}

func (s *SalesDigestService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron do resumo de vendas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do resumo de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.GenerateDigest(ctx); err != nil {
			logrus.WithError(err).Error("Erro na geração do resumo de vendas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do resumo de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// GenerateDigest gera e publica o resumo do mês anterior à data atual.
// Execuções sobrepostas são ignoradas.
func (s *SalesDigestService) GenerateDigest(ctx context.Context) error {
	if !s.begin() {
		logrus.Warn("Geração do resumo de vendas já está em execução")
		return nil
	}

	// O código do erro no status separa falha de leitura da falha no broker
	code := apiErrors.ErrDatabaseOperation
	digest, err := s.BuildDigest(ctx, s.now())
	if err == nil {
		code = apiErrors.ErrExternalService
		if err = s.publisher.PublishDigest(ctx, digest); err != nil {
			err = errors.Wrap(err, "erro ao publicar resumo de vendas")
		}
	}

	s.finish(digest, code, err)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"digest_id": digest.ID,
		"period":    digest.Period,
	}).Info("Resumo de vendas concluído")

	return nil
}

// BuildDigest monta o resumo do mês anterior a processingDate
func (s *SalesDigestService) BuildDigest(ctx context.Context, processingDate time.Time) (*domain.SalesDigest, error) {
	target := ranking.FirstDayOfMonth(processingDate.Year(), processingDate.Month()).AddDate(0, -1, 0)
	end := target.AddDate(0, 1, -1)

	// Inclui o mês anterior ao resumido para calcular a variação do ranking
	table, err := s.salesRepo.ListSalesBetween(ctx, target.AddDate(0, -1, 0), end)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas do resumo")
	}

	month := filtering.New(filtering.EmptySelectionIgnore).Filter(table, domain.SalesFilter{
		StartDate: &target,
		EndDate:   &end,
	})

	id, err := utils.GenerateDigestID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do resumo")
	}

	logrus.WithFields(logrus.Fields{
		"period":  domain.Period(target.Year(), target.Month()),
		"records": month.Len(),
	}).Info("Montando resumo de vendas")

	return &domain.SalesDigest{
		ID:          id,
		Period:      domain.Period(target.Year(), target.Month()),
		GeneratedAt: processingDate,
		Metrics:     summarizing.Summarize(month),
		Branches:    branchDigests(month),
		Ranking:     ranking.RankMonth(table, target.Year(), target.Month()),
	}, nil
}

func branchDigests(table domain.SalesTable) []domain.BranchDigest {
	filterer := filtering.New(filtering.EmptySelectionNoData)
	branches := filtering.Available(table).Branches

	out := make([]domain.BranchDigest, 0, len(branches))
	for _, branch := range branches {
		branchTable := filterer.Filter(table, domain.SalesFilter{
			Branches: []string{branch},
			Months:   domain.AllMonths(),
		})
		out = append(out, domain.BranchDigest{
			BranchName: branch,
			Metrics:    summarizing.Summarize(branchTable),
		})
	}
	return out
}

func (s *SalesDigestService) begin() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *SalesDigestService) finish(digest *domain.SalesDigest, code string, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastError = nil

	if err != nil {
		apiErr := apiErrors.FromError(err, code)
		s.lastError = &apiErr
		return
	}

	s.lastPeriod = digest.Period
	s.lastDigestID = digest.ID
}

func (s *SalesDigestService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Resumo de vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual do resumo de vendas")
	go func() {
		if err := s.GenerateDigest(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na geração manual do resumo de vendas")
		}
	}()
}

func (s *SalesDigestService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

func (s *SalesDigestService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_period":            s.lastPeriod,
		"last_digest_id":         s.lastDigestID,
		"last_error":             s.lastError,
	}
}
