package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a foreign key blocks the write.
	ErrReferenced = errors.New("record is referenced")
	// ErrTooLong is returned when a value exceeds its column width.
	ErrTooLong = errors.New("value too long")
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgStringTruncation    = "22001"
)

// dbtx is satisfied by *pgxpool.Pool and pgx.Tx so the aggregate helpers
// run unchanged inside or outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapError translates driver errors into the package sentinels.
// Unknown errors are returned untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(ErrDuplicate, err)
		case pgForeignKeyViolation:
			return errors.Join(ErrReferenced, err)
		case pgStringTruncation:
			return errors.Join(ErrTooLong, err)
		}
	}
	return err
}

// escapeLike quotes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// setClause accumulates "col = $n" fragments for sparse updates.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, val any) {
	s.args = append(s.args, val)
	s.cols = append(s.cols, col+" = $"+strconv.Itoa(len(s.args)))
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

// build renders "UPDATE table SET ..., updated_at = NOW() WHERE id = $n".
func (s *setClause) build(table string, id int) (string, []any) {
	args := append(append([]any{}, s.args...), id)
	sql := "UPDATE " + table + " SET " + strings.Join(s.cols, ", ") +
		", updated_at = NOW() WHERE id = $" + strconv.Itoa(len(args))
	return sql, args
}

// whereBuilder accumulates AND-combined predicates with positional args.
type whereBuilder struct {
	preds []string
	args  []any
}

// arg registers v and returns its placeholder.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) and(pred string) {
	w.preds = append(w.preds, pred)
}

func (w *whereBuilder) sql() string {
	if len(w.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.preds, " AND ")
}
