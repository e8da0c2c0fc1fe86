package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jash90/accounting-app-sub014/internal/application/access"
	"github.com/jash90/accounting-app-sub014/internal/domain/repository"
)

// Ensure TxRunner implements access.TxRunner.
var _ access.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la unidad atómica de la revocación en cascada: el flip de is_enabled y
// el borrado de permisos se confirman juntos o se revierten juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	grantRepo repository.CompanyModuleRepository,
	permRepo repository.UserModulePermissionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	grantRepo := NewCompanyModuleRepository(tx)
	permRepo := NewUserModulePermissionRepository(tx)

	if err := fn(grantRepo, permRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
