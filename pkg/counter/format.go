package counter

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders a value for display. Progress is the run fraction in
// [0, 1] before easing.
type Formatter func(value, progress float64) string

// FormatNumber renders v with the fewest digits that represent it exactly,
// without an exponent. Negative zero renders as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PlainFormatter is the default formatter.
func PlainFormatter(value, _ float64) string {
	return FormatNumber(value)
}

// FixedFormatter renders values with exactly decimals fraction digits.
func FixedFormatter(decimals int) Formatter {
	if decimals < 0 {
		decimals = 0
	}
	return func(value, _ float64) string {
		if value == 0 {
			value = 0
		}
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
}

// LocaleFormatter renders values with the digit grouping and decimal
// separator of tag, using exactly decimals fraction digits.
func LocaleFormatter(tag language.Tag, decimals int) Formatter {
	if decimals < 0 {
		decimals = 0
	}
	p := message.NewPrinter(tag)
	return func(value, _ float64) string {
		if value == 0 {
			value = 0
		}
		return p.Sprint(number.Decimal(value, number.Scale(decimals)))
	}
}

// Affix wraps f's output in prefix and suffix. A nil f uses PlainFormatter.
func Affix(prefix, suffix string, f Formatter) Formatter {
	if f == nil {
		f = PlainFormatter
	}
	return func(value, progress float64) string {
		return prefix + f(value, progress) + suffix
	}
}
