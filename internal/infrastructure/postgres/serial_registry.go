package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Auditoria-api/internal/application/audit"
)

var _ audit.SerialRegistry = (*SerialRegistry)(nil)

// SerialRegistry adaptador de solo lectura al registro de seriales
// (tabla product_serials, mantenida por el sistema de trazabilidad).
type SerialRegistry struct {
	q Querier
}

// NewSerialRegistry construye el adaptador. Pasar pool o tx (Querier).
func NewSerialRegistry(q Querier) *SerialRegistry {
	return &SerialRegistry{q: q}
}

// Lookup busca un serial en el registro; nil (sin error) si no está registrado.
func (r *SerialRegistry) Lookup(serial string) (*audit.RegisteredSerial, error) {
	query := `
		SELECT serial, product_id, state, COALESCE(warehouse_id, '')
		FROM product_serials WHERE serial = $1`
	var s audit.RegisteredSerial
	err := r.q.QueryRow(context.Background(), query, serial).Scan(
		&s.Serial, &s.ProductID, &s.State, &s.WarehouseID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup serial: %w", err)
	}
	return &s, nil
}
