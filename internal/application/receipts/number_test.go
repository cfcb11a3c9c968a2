package receipts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-pos/internal/application/receipts"
)

func TestGenerateNumber_Formato(t *testing.T) {
	at := time.Date(2026, 8, 28, 14, 30, 45, 0, time.UTC)

	assert.Equal(t, "REC-CEN-20260828-143045", receipts.GenerateNumber("Central", at))
}

func TestGenerateNumber_QuitaTildes(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "REC-NUN-20260102-030405", receipts.GenerateNumber("Ñuñoa", at))
	assert.Equal(t, "REC-AME-20260102-030405", receipts.GenerateNumber("América Sur", at))
}

func TestGenerateNumber_NombreCortoRellenaConX(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "REC-OXX-20260102-030405", receipts.GenerateNumber("O", at))
	assert.Equal(t, "REC-XXX-20260102-030405", receipts.GenerateNumber("", at))
	assert.Equal(t, "REC-XXX-20260102-030405", receipts.GenerateNumber("123", at), "dígitos no cuentan como letras")
}

func TestGenerateNumber_IgnoraEspaciosYSimbolos(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "REC-LAB-20260102-030405", receipts.GenerateNumber("  la bodega ", at))
}
