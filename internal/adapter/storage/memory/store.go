// Package memory provides mutex-guarded map implementations of the
// repository ports. It backs the service in tests and single-node
// deployments without PostgreSQL; business logic is identical across
// both stores.
package memory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transactor implements ports.DBTransactor with no-op transactions.
// The map repositories are individually atomic, so there is nothing to
// commit or roll back.
type Transactor struct{}

// NewTransactor creates a no-op transactor.
func NewTransactor() *Transactor {
	return &Transactor{}
}

// Begin returns a no-op transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return noopTx{}, nil
}

// noopTx satisfies pgx.Tx without touching a database.
type noopTx struct{}

func (noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return noopTx{}, nil }
func (noopTx) Commit(ctx context.Context) error          { return nil }
func (noopTx) Rollback(ctx context.Context) error        { return nil }
func (noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (noopTx) Conn() *pgx.Conn                                               { return nil }
