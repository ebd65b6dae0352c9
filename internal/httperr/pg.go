package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reconhece o insert que perdeu a corrida check-then-act:
// o índice único parcial de bookings transforma a segunda gravação do mesmo
// horário em erro 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
