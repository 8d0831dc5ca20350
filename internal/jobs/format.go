package jobs

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// formatRupiah renders an amount as "Rp 1.234.567" with Indonesian digit
// grouping. Amounts are whole rupiah; fractions are rounded away.
func formatRupiah(amount decimal.Decimal) string {
	return idPrinter.Sprintf("Rp %d", amount.Round(0).IntPart())
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// monthName returns the Indonesian name for a month.
func monthName(m time.Month) string {
	return monthNames[m-1]
}
