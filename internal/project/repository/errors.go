package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint hits that callers translate into Conflict responses. They come
// out of the schema's unique indexes, so concurrent writers racing past the
// application-level existence checks still lose deterministically.
var (
	ErrDuplicateMember     = errors.New("membership already exists")
	ErrDuplicateInvitation = errors.New("pending invitation already exists")
	ErrDuplicateStatusName = errors.New("status name already exists")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
