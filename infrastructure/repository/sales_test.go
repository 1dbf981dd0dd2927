package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/migration"
)

func newMockConnection(t *testing.T, driver string) (*sqldb.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqldb.Wrap(db, driver), mock
}

// countingConn conta as consultas que chegam na conexão
type countingConn struct {
	sqldb.Conn
	queries int
}

func (c *countingConn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	c.queries++
	return c.Conn.QueryContext(ctx, query, args...)
}

func TestSalesRepository_AcceptsAnyConn(t *testing.T) {
	mockConn, mock := newMockConnection(t, sqldb.DriverSQLite)
	conn := &countingConn{Conn: mockConn}

	mock.ExpectQuery(regexp.QuoteMeta("FROM tbVendasDashboard ORDER BY")).
		WillReturnRows(sqlmock.NewRows(salesColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM tbFiliaisCoordenadas ORDER BY")).
		WillReturnRows(sqlmock.NewRows([]string{"nmFilial", "latitude", "longitude"}))

	table, err := NewSalesRepository(conn).ListSales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table)

	coordinates, err := NewBranchCoordinateRepository(conn).ListCoordinates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, coordinates)

	assert.Equal(t, 2, conn.queries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesRepository_ListSales(t *testing.T) {
	conn, mock := newMockConnection(t, sqldb.DriverPostgres)
	repo := NewSalesRepository(conn)

	rows := sqlmock.NewRows(salesColumns).
		AddRow(1, "12.345.678/0001-90", "FILIAL RECIFE", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), 100.5, 90.0).
		AddRow(2, "12.345.678/0001-90", "FILIAL RECIFE", "2024-01-09", 200.0, 100.0).
		AddRow(3, nil, "FILIAL BELÉM", []byte("2024-01-15T00:00:00Z"), 300.0, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT idVendas, nrCNPJ, nmFilial, dtVenda, vlVenda, txMeta FROM tbVendasDashboard ORDER BY dtVenda ASC, idVendas ASC",
	)).WillReturnRows(rows)

	table, err := repo.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, int64(1), table[0].ID)
	assert.Equal(t, "12.345.678/0001-90", table[0].TaxID)
	assert.Equal(t, 100.5, table[0].SaleAmount)
	assert.Equal(t, 90.0, table[0].TargetRate)
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), table[1].SaleDate)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), table[2].SaleDate)
	assert.Empty(t, table[2].TaxID)
	assert.Zero(t, table[2].TargetRate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesRepository_ListSalesBetween(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		query  string
	}{
		{
			name:   "postgres usa placeholder com dólar",
			driver: sqldb.DriverPostgres,
			query:  "FROM tbVendasDashboard WHERE dtVenda >= $1 AND dtVenda <= $2 ORDER BY",
		},
		{
			name:   "sqlite usa interrogação",
			driver: sqldb.DriverSQLite,
			query:  "FROM tbVendasDashboard WHERE dtVenda >= ? AND dtVenda <= ? ORDER BY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t, tt.driver)
			repo := NewSalesRepository(conn)

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs("2024-02-01", "2024-02-29").
				WillReturnRows(sqlmock.NewRows(salesColumns))

			table, err := repo.ListSalesBetween(
				context.Background(),
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			)
			require.NoError(t, err)
			assert.NotNil(t, table)
			assert.Empty(t, table)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSalesRepository_ListSales_Errors(t *testing.T) {
	t.Run("erro do postgres expõe o código", func(t *testing.T) {
		conn, mock := newMockConnection(t, sqldb.DriverPostgres)
		repo := NewSalesRepository(conn)

		mock.ExpectQuery("SELECT").WillReturnError(&pq.Error{Code: "42P01", Message: "relation does not exist"})

		_, err := repo.ListSales(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "42P01")

		var pqErr *pq.Error
		assert.True(t, errors.As(err, &pqErr))
	})

	t.Run("falha de conexão", func(t *testing.T) {
		conn, mock := newMockConnection(t, sqldb.DriverPostgres)
		repo := NewSalesRepository(conn)

		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

		_, err := repo.ListSales(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})

	t.Run("data inválida", func(t *testing.T) {
		conn, mock := newMockConnection(t, sqldb.DriverPostgres)
		repo := NewSalesRepository(conn)

		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(salesColumns).AddRow(1, "x", "FILIAL RECIFE", "08/01/2024", 10.0, 100.0),
		)

		_, err := repo.ListSales(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao converter data")
	})
}

func TestScanDate(t *testing.T) {
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "time com horário", value: time.Date(2024, 3, 10, 15, 30, 0, 0, time.FixedZone("BRT", -3*3600))},
		{name: "texto sem horário", value: "2024-03-10"},
		{name: "texto com horário", value: "2024-03-10 08:00:00"},
		{name: "bytes RFC3339", value: []byte("2024-03-10T23:59:59Z")},
		{name: "nulo", value: nil, wantErr: true},
		{name: "tipo inesperado", value: 20240310, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func newSQLiteConnection(t *testing.T) *sqldb.Connection {
	t.Helper()

	db, err := sql.Open(sqldb.DriverSQLite, filepath.Join(t.TempDir(), "vendas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.Run(db, sqldb.DriverSQLite))

	return sqldb.Wrap(db, sqldb.DriverSQLite)
}

func TestSalesRepository_SQLite(t *testing.T) {
	conn := newSQLiteConnection(t)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `
		INSERT INTO tbVendasDashboard (nrCNPJ, nmFilial, dtVenda, vlVenda, txMeta) VALUES
			('11.111.111/0001-11', 'FILIAL CURITIBA', '2024-02-05', 50.25, 100),
			('11.111.111/0001-11', 'FILIAL CURITIBA', '2024-01-08', 100, 90),
			('22.222.222/0001-22', 'FILIAL RECIFE', '2024-03-01', 75, 120)`)
	require.NoError(t, err)

	repo := NewSalesRepository(conn)

	table, err := repo.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), table[0].SaleDate)
	assert.Equal(t, "FILIAL CURITIBA", table[0].BranchName)
	assert.Equal(t, 50.25, table[1].SaleAmount)

	february, err := repo.ListSalesBetween(ctx,
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, february, 1)
	assert.Equal(t, 100.0, february[0].TargetRate)
}
