package repository

import (
	"errors"

	"teamdex/internal/database"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func readDB(primary *gorm.DB) *gorm.DB {
	if db := database.GetReadDB(); db != nil {
		return db
	}
	return primary
}

// isDuplicateKey reports whether err is a unique constraint violation.
// TranslateError normalizes most drivers to gorm.ErrDuplicatedKey; raw SQL
// against Postgres can still surface a pgconn error with SQLSTATE 23505.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
