package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging/amqp"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/filtering"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/locating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if cfg.Database.Migrate {
		if err := migration.Run(conn.DB, conn.Driver); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	salesRepo := repository.NewSalesRepository(conn)
	coordinateRepo := repository.NewBranchCoordinateRepository(conn)

	policy, err := filtering.ParsePolicy(cfg.Filter.EmptySelection)
	if err != nil {
		logrus.WithError(err).Fatal("Configuração de filtro inválida")
	}

	locator := locating.NewLocator(coordinateRepo)
	reporter := reporting.NewService(salesRepo, locator, filtering.New(policy))
	rankingService := ranking.NewBranchRankingService(salesRepo)

	publisher := digestPublisher(cfg.AMQP)
	defer publisher.Close()

	salesDigestService := scheduler.NewSalesDigestService(salesRepo, publisher, cfg)
	if err := salesDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo de vendas")
	} else {
		logrus.Info("Agendador do resumo de vendas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		DB:          conn,
		Reporter:    reporter,
		Locator:     locator,
		Ranking:     rankingService,
		SalesDigest: salesDigestService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn cria a conexão com o banco configurado
func dbconn(ctx context.Context, dbConfig config.Database) *sqldb.Connection {
	conn, err := sqldb.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.WithField("driver", conn.Driver).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}

// digestPublisher usa o broker AMQP quando configurado, senão apenas registra o resumo no log
func digestPublisher(cfg config.AMQP) messaging.DigestPublisher {
	if cfg.URL == "" {
		logrus.Info("AMQP_URL não configurada, resumo de vendas será apenas registrado no log")
		return messaging.NewLogPublisher()
	}

	client, err := amqp.NewClient(cfg)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao conectar ao broker AMQP, usando publicador de log")
		return messaging.NewLogPublisher()
	}

	return client
}
