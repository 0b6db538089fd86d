// Package money formatea montos para mostrar (PDF, CLI). No interviene en los cálculos:
// los montos se redondean a 2 decimales solo aquí.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos según un idioma.
type Formatter struct {
	group   string
	decimal string
	symbol  string
}

// New crea un formatter para tag con el símbolo de moneda indicado (vacío = sin símbolo).
// Los separadores se toman de x/text; los dígitos salen del decimal sin pasar por float64.
func New(tag language.Tag, symbol string) *Formatter {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234567.5, number.Scale(2)))
	var seps []string
	for _, r := range sample {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	f := &Formatter{group: ",", decimal: ".", symbol: symbol}
	if len(seps) > 0 {
		f.decimal = seps[len(seps)-1]
	}
	if len(seps) > 1 {
		f.group = seps[0]
	}
	return f
}

// Default formatter en español con símbolo "$".
var Default = New(language.Spanish, "$")

// Amount monto con separadores del idioma y exactamente 2 decimales.
func (f *Formatter) Amount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.decimal)
	b.WriteString(frac)
	return b.String()
}

// Currency monto precedido del símbolo.
func (f *Formatter) Currency(d decimal.Decimal) string {
	if f.symbol == "" {
		return f.Amount(d)
	}
	return f.symbol + " " + f.Amount(d)
}

// Percent porcentaje sin ceros de relleno ("15%", "12.5%").
func Percent(d decimal.Decimal) string {
	return d.String() + "%"
}

// Format atajo para Default.Currency.
func Format(d decimal.Decimal) string { return Default.Currency(d) }
