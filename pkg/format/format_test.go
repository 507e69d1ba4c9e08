package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Montos en Rupiah con agrupación indonesia de miles (punto).
func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 12.450.000", Rupiah(decimal.NewFromInt(12_450_000)))
	assert.Equal(t, "Rp 20.000", Rupiah(decimal.NewFromInt(20_000)))
	assert.Equal(t, "Rp 0", Rupiah(decimal.Zero))
	// Los decimales se truncan: el backend trabaja en Rupiah enteras.
	assert.Equal(t, "Rp 7.500", Rupiah(decimal.NewFromFloat(7500.75)))
}

func TestDate(t *testing.T) {
	d := time.Date(2024, 12, 25, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "25/12/2024", Date(d))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 11, 25, 23, 0, 0, 0, time.UTC)
	exp := time.Date(2024, 12, 25, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, DaysUntil(now, exp), "cuenta días de calendario, no horas")
	assert.Equal(t, -30, DaysUntil(exp, now))
	assert.Equal(t, 0, DaysUntil(now, now))
}
