package repository

import (
	"context"

	"xraysim/internal/model"
)

// RadiographRepository defines data access for exported radiographs using SQL queries only.
// No business logic here, strictly persistence operations.
type RadiographRepository interface {
	// Create inserts a new radiograph record and returns the stored row.
	Create(ctx context.Context, r *model.Radiograph) (*model.Radiograph, error)

	// FindByID returns a radiograph by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Radiograph, error)

	// List returns a page of radiographs, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Radiograph], error)

	// Delete removes a radiograph by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
