// Package store holds the PostgreSQL queries behind categories, their
// posts and admin users. Lookups return (nil, nil) when no row matches;
// every other failure is wrapped with the operation name.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSlugTaken is returned by category writes that collide with the
	// unique slug constraint.
	ErrSlugTaken = errors.New("category slug already in use")

	// ErrCategoryGone is returned by Update when no row has the ID.
	ErrCategoryGone = errors.New("category no longer exists")
)

// slugConstraint is the unique constraint PostgreSQL names for
// categories.slug.
const slugConstraint = "categories_slug_key"

// scanner is the part of *sql.Row and *sql.Rows the scan helpers need.
type scanner interface {
	Scan(dest ...any) error
}

// isSlugConflict reports whether err is a unique violation on the
// category slug.
func isSlugConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == slugConstraint
}
