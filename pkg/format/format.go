package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer con locale indonesio: agrupa miles con punto (12.450.000).
var printer = message.NewPrinter(language.Indonesian)

// Rupiah formatea un monto como moneda indonesia ("Rp 12.450.000").
// Los montos del backend no llevan decimales; se redondea hacia abajo.
func Rupiah(amount decimal.Decimal) string {
	return printer.Sprintf("Rp %d", amount.IntPart())
}

// Date formatea una fecha para la UI (dd/mm/yyyy).
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DaysUntil devuelve los días de calendario desde now hasta t.
// Negativo si t ya pasó.
func DaysUntil(now, t time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tDay.Sub(nowDay).Hours() / 24)
}
