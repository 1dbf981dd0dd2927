// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	salesTable = "tbVendasDashboard"
)

var salesColumns = []string{
	"idVendas",
	"nrCNPJ",
	"nmFilial",
	"dtVenda",
	"vlVenda",
	"txMeta",
}

// SalesRepository lê as vendas do dashboard. Cada chamada faz uma nova leitura, sem cache.
type SalesRepository interface {
	ListSales(ctx context.Context) (domain.SalesTable, error)
	ListSalesBetween(ctx context.Context, startDate, endDate time.Time) (domain.SalesTable, error)
}

type salesRepository struct {
	conn sqldb.Conn
}

func NewSalesRepository(conn sqldb.Conn) SalesRepository {
	return &salesRepository{
		conn: conn,
	}
}

func (r *salesRepository) ListSales(ctx context.Context) (domain.SalesTable, error) {
	return r.list(ctx, r.selectSales())
}

// ListSalesBetween retorna as vendas com data entre startDate e endDate, inclusive
func (r *salesRepository) ListSalesBetween(ctx context.Context, startDate, endDate time.Time) (domain.SalesTable, error) {
	query := r.selectSales().
		Where(squirrel.GtOrEq{"dtVenda": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"dtVenda": endDate.Format(time.DateOnly)})

	return r.list(ctx, query)
}

func (r *salesRepository) selectSales() squirrel.SelectBuilder {
	return squirrel.
		Select(salesColumns...).
		From(salesTable).
		OrderBy("dtVenda ASC", "idVendas ASC").
		PlaceholderFormat(r.conn.Placeholder())
}

func (r *salesRepository) list(ctx context.Context, builder squirrel.SelectBuilder) (domain.SalesTable, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	table := make(domain.SalesTable, 0)
	for rows.Next() {
		record, err := scanSalesRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		table = append(table, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return table, nil
}

func scanSalesRecord(rows *sql.Rows) (domain.SalesRecord, error) {
	var (
		record  domain.SalesRecord
		rawDate any
		taxID   sql.NullString
		target  sql.NullFloat64
	)

	err := rows.Scan(
		&record.ID,
		&taxID,
		&record.BranchName,
		&rawDate,
		&record.SaleAmount,
		&target,
	)
	if err != nil {
		return record, err
	}

	date, err := scanDate(rawDate)
	if err != nil {
		return record, err
	}

	record.TaxID = taxID.String
	record.TargetRate = target.Float64
	record.SaleDate = date

	return record, nil
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
}

// scanDate aceita o DATE do postgres (time.Time) e o TEXT do sqlite
func scanDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return domain.DateOnly(v), nil
	case []byte:
		return parseDate(string(v))
	case string:
		return parseDate(v)
	case nil:
		return time.Time{}, errors.New("data da venda nula")
	}

	return time.Time{}, fmt.Errorf("tipo de data não suportado: %T", value)
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return domain.DateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("erro ao converter data: %q", value)
}

func wrapQueryError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
	}
	return errors.Wrap(err, "erro ao executar a query")
}
