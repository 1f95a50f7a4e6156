package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Auditoria-api/internal/domain/audit"
)

func TestFormatCode(t *testing.T) {
	march := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "AUD-202503-0001", audit.FormatCode(audit.SequenceAudit, march, 1))
	assert.Equal(t, "AJU-202503-0042", audit.FormatCode(audit.SequenceAdjustment, march, 42))
	assert.Equal(t, "AUD-202503-1234", audit.FormatCode(audit.SequenceAudit, march, 1234))
}

func TestPeriodKey_CambioDeMes(t *testing.T) {
	finEnero := time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC)
	inicioFebrero := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "202501", audit.PeriodKey(finEnero))
	assert.Equal(t, "202502", audit.PeriodKey(inicioFebrero))
	assert.NotEqual(t, audit.PeriodKey(finEnero), audit.PeriodKey(inicioFebrero),
		"el período cambia con el mes calendario y la numeración reinicia")
}
