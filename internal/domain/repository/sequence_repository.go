package repository

// SequenceRepository define el puerto del contador mensual de códigos de
// documento. Next incrementa atómicamente el contador de (kind, período
// YYYYMM) y devuelve el nuevo valor; cada período nuevo arranca en 1.
type SequenceRepository interface {
	Next(kind, period string) (int, error)
}
