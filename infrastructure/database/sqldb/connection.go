package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	Placeholder() squirrel.PlaceholderFormat
}

var _ Conn = (*Connection)(nil)

type Connection struct {
	*sql.DB
	Driver string
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	if cfg.Driver != DriverPostgres && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("driver de banco não suportado: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Connection{DB: db, Driver: cfg.Driver}, nil
}

// Wrap cria uma Connection a partir de um *sql.DB já aberto (útil em testes)
func Wrap(db *sql.DB, driver string) *Connection {
	return &Connection{DB: db, Driver: driver}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Placeholder retorna o formato de parâmetro do driver: $1 no postgres, ? no sqlite
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	if c.Driver == DriverPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}
