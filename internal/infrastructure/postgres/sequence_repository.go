package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador mensual de códigos de documento sobre PostgreSQL.
// El upsert con value = value + 1 es atómico a nivel de fila, así que dos
// llamadas concurrentes nunca devuelven el mismo consecutivo.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa el contador de (kind, período) y devuelve el nuevo valor.
// Un período nuevo arranca en 1.
func (r *SequenceRepo) Next(kind, period string) (int, error) {
	query := `
		INSERT INTO document_sequences (kind, period, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (kind, period)
		DO UPDATE SET value = document_sequences.value + 1
		RETURNING value`
	var value int
	err := r.q.QueryRow(context.Background(), query, kind, period).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s-%s: %w", kind, period, err)
	}
	return value, nil
}
