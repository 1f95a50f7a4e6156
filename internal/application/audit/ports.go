package audit

import (
	"context"
	"io"

	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad de las mutaciones
// multi-fila del ciclo de auditoría: inicio de conteo, lote de conteos y
// finalización + snapshot.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		auditRepo repository.AuditRepository,
		detailRepo repository.AuditDetailRepository,
		stockRepo repository.StockRepository,
		snapshotRepo repository.SnapshotRepository,
	) error) error
}

// RegisteredSerial es lo que el registro externo conoce de un serial.
type RegisteredSerial struct {
	Serial      string
	ProductID   string
	State       string
	WarehouseID string // bodega donde el registro espera encontrar el serial
}

// SerialRegistry puerto de solo lectura al registro externo de seriales.
// Lookup devuelve nil (sin error) si el serial no está registrado.
type SerialRegistry interface {
	Lookup(serial string) (*RegisteredSerial, error)
}

// BlobStorage puerto al almacén externo de archivos de evidencia.
type BlobStorage interface {
	Save(ctx context.Context, name, contentType string, content io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}
