package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// pqConstraint returns the violated constraint name when err is a pq error
// with one of the given SQLSTATE codes, or "" otherwise.
func pqConstraint(err error, codes ...pq.ErrorCode) string {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return ""
	}
	for _, code := range codes {
		if pqErr.Code == code {
			return pqErr.Constraint
		}
	}
	return ""
}

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqCheckViolation      pq.ErrorCode = "23514"
)
