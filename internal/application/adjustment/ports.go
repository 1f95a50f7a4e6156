package adjustment

import (
	"context"

	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción con los
// repositorios del flujo de ajustes atados a esa tx. La generación del lote
// y la aplicación de cada ajuste son todo-o-nada.
type TxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		adjRepo repository.AdjustmentRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
