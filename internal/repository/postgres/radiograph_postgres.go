package postgres

import (
	"context"
	"database/sql"

	"xraysim/internal/model"
	"xraysim/internal/repository"
)

const radiographColumns = `id, current_ma, voltage_kvp, width, height, format, storage_path, size, content_type, created_at`

// RadiographPostgres is a PostgreSQL implementation of repository.RadiographRepository.
type RadiographPostgres struct {
	db *sql.DB
}

// NewRadiographPostgres creates a new RadiographPostgres repository.
func NewRadiographPostgres(db *sql.DB) *RadiographPostgres {
	return &RadiographPostgres{db: db}
}

var _ repository.RadiographRepository = (*RadiographPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanRadiograph(s scanner) (*model.Radiograph, error) {
	var r model.Radiograph
	if err := s.Scan(
		&r.ID,
		&r.Current,
		&r.Voltage,
		&r.Width,
		&r.Height,
		&r.Format,
		&r.StoragePath,
		&r.Size,
		&r.ContentType,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new radiograph row and returns the stored record.
func (p *RadiographPostgres) Create(ctx context.Context, r *model.Radiograph) (*model.Radiograph, error) {
	const q = `
		INSERT INTO radiographs (` + radiographColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + radiographColumns
	row := p.db.QueryRowContext(ctx, q,
		r.ID,
		r.Current,
		r.Voltage,
		r.Width,
		r.Height,
		r.Format,
		r.StoragePath,
		r.Size,
		r.ContentType,
		r.CreatedAt,
	)
	return scanRadiograph(row)
}

// FindByID fetches a single radiograph by its ID.
func (p *RadiographPostgres) FindByID(ctx context.Context, id string) (*model.Radiograph, error) {
	const q = `SELECT ` + radiographColumns + ` FROM radiographs WHERE id = $1`
	return scanRadiograph(p.db.QueryRowContext(ctx, q, id))
}

// List returns radiographs using LIMIT/OFFSET pagination and a total count.
func (p *RadiographPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Radiograph], error) {
	const qCount = `SELECT COUNT(*) FROM radiographs`
	var total int
	if err := p.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + radiographColumns + ` FROM radiographs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := p.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Radiograph, 0)
	for rows.Next() {
		r, err := scanRadiograph(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Radiograph]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a radiograph by ID. It does not return an error if the row does not exist.
func (p *RadiographPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM radiographs WHERE id = $1`
	_, err := p.db.ExecContext(ctx, q, id)
	return err
}
