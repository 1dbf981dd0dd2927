package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/sqldb"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	branchCoordinatesTable = "tbFiliaisCoordenadas"
)

type BranchCoordinateRepository interface {
	ListCoordinates(ctx context.Context) ([]domain.BranchCoordinate, error)
}

type branchCoordinateRepository struct {
	conn sqldb.Conn
}

func NewBranchCoordinateRepository(conn sqldb.Conn) BranchCoordinateRepository {
	return &branchCoordinateRepository{
		conn: conn,
	}
}

func (r *branchCoordinateRepository) ListCoordinates(ctx context.Context) ([]domain.BranchCoordinate, error) {
	query, args, err := squirrel.
		Select("nmFilial", "latitude", "longitude").
		From(branchCoordinatesTable).
		OrderBy("nmFilial ASC").
		PlaceholderFormat(r.conn.Placeholder()).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err)
	}
	defer rows.Close()

	coordinates := make([]domain.BranchCoordinate, 0)
	for rows.Next() {
		var c domain.BranchCoordinate
		if err := rows.Scan(&c.BranchName, &c.Latitude, &c.Longitude); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear coordenada")
		}
		coordinates = append(coordinates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return coordinates, nil
}
