// Package migration aplica o schema do dashboard de vendas com golang-migrate
package migration

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Run aplica todas as migrações pendentes do driver informado.
// A conexão recebida não é fechada.
func Run(db *sql.DB, driver string) error {
	var (
		instance database.Driver
		err      error
	)

	switch driver {
	case sqldb.DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case sqldb.DriverSQLite:
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		return fmt.Errorf("driver de migração não suportado: %q", driver)
	}
	if err != nil {
		return fmt.Errorf("erro ao criar driver de migração: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("erro ao abrir migrações embutidas: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, instance)
	if err != nil {
		return fmt.Errorf("erro ao criar instância de migração: %w", err)
	}

	// m.Close fecharia também a conexão compartilhada com os repositórios
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("erro ao ler versão do schema: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"driver":  driver,
		"version": version,
		"dirty":   dirty,
	}).Info("Migrações aplicadas")

	return nil
}
