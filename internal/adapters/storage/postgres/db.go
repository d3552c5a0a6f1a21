package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"petclinic/internal/domain/model"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schema string

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	execer
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db execer) error {
	for _, stmt := range splitStatements(schema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func splitStatements(ddl string) []string {
	out := make([]string, 0)
	for _, stmt := range strings.Split(ddl, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// nextIDExpr reproduce la asignación del store en memoria: max + 1, o 1 si la
// tabla está vacía. $1 es la identidad actual (NULL si la entidad es nueva).
func nextIDExpr(table string) string {
	return "COALESCE($1, (SELECT COALESCE(MAX(id), 0) + 1 FROM " + table + "))"
}

func nullID(e model.Entity) sql.NullInt64 {
	if e.IsNew() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: e.GetID(), Valid: true}
}

// upsert corre un INSERT ... ON CONFLICT ... RETURNING id dentro de tx.
// Para entidades nuevas bloquea la tabla antes de calcular max + 1.
// El id se asigna a la entidad recién después del commit (ver save).
func upsert(ctx context.Context, tx *sql.Tx, table, query string, e model.Entity, args ...any) (int64, error) {
	if e.IsNew() {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE "+table+" IN EXCLUSIVE MODE"); err != nil {
			return 0, fmt.Errorf("lock %s: %w", table, err)
		}
	}
	var id int64
	params := append([]any{nullID(e)}, args...)
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&id); err != nil {
		return 0, fmt.Errorf("save %s: %w", e.Kind(), err)
	}
	return id, nil
}

// save es el caso simple: una fila, sin tablas hijas.
func save(ctx context.Context, db *sql.DB, table, query string, e model.Entity, args ...any) error {
	var id int64
	err := inTx(ctx, db, func(tx *sql.Tx) error {
		var err error
		id, err = upsert(ctx, tx, table, query, e, args...)
		return err
	})
	if err != nil {
		return err
	}
	e.SetID(id)
	return nil
}

func notFound(kind model.Kind, id int64) error {
	return fmt.Errorf("%w: %s %d", model.ErrNotFound, kind, id)
}

// likePattern arma '%s%' escapando los comodines de LIKE.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullDate(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
