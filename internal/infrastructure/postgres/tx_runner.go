package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

// Ensure TxRunner implements audit.TxRunner and adjustment.TxRunner.
var _ audit.TxRunner = (*TxRunner)(nil)
var _ adjustment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	auditRepo repository.AuditRepository,
	detailRepo repository.AuditDetailRepository,
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	auditRepo := NewAuditRepository(tx)
	detailRepo := NewAuditDetailRepository(tx)
	stockRepo := NewStockRepository(tx)
	snapshotRepo := NewSnapshotRepository(tx)

	if err := fn(auditRepo, detailRepo, stockRepo, snapshotRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjustment inicia una transacción con los repos del flujo de ajustes
// (generación de lotes y aplicación a stock).
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	adjRepo repository.AdjustmentRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	adjRepo := NewAdjustmentRepository(tx)
	stockRepo := NewStockRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	seqRepo := NewSequenceRepository(tx)

	if err := fn(adjRepo, stockRepo, movRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
