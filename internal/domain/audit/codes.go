package audit

import (
	"fmt"
	"time"
)

// Tipos de secuencia para la numeración mensual de documentos.
const (
	SequenceAudit      = "AUD"
	SequenceAdjustment = "AJU"
)

// PeriodKey devuelve el período YYYYMM de una fecha; es la clave del contador
// mensual, por lo que cada mes la numeración reinicia en 0001.
func PeriodKey(t time.Time) string {
	return t.Format("200601")
}

// FormatCode arma un código de documento: AUD-YYYYMM-#### o AJU-YYYYMM-####.
func FormatCode(kind string, t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", kind, PeriodKey(t), seq)
}
