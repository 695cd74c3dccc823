// Package validation turns raw form input into records ready for storage.
// Each validator stops at the first failing rule.
package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pharmacy/m/domain"
)

// Error describes the first rule a form failed.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// parseDecimal accepts either '.' or ',' as the decimal separator.
func parseDecimal(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Decimal{}, false
	}
	if !strings.Contains(value, ".") {
		value = strings.Replace(value, ",", ".", 1)
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return parsed, true
}

// Salary and price columns are DECIMAL(12,2).
const (
	moneyScale         = 2
	moneyIntegerDigits = 10
)

var moneyLimit = decimal.New(1, moneyIntegerDigits)

// fitsMoney reports whether d is storable without rounding.
func fitsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyScale)) && d.Abs().LessThan(moneyLimit)
}

func moneyLimitMessage(field string) string {
	return field + " must have at most " + strconv.Itoa(moneyIntegerDigits) +
		" integer digits and " + strconv.Itoa(moneyScale) + " decimal places"
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func parseInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
