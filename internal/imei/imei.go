// Package imei validates 15-digit device identifiers (Luhn check digit)
// and recovers IMEIs mangled by spreadsheet tools.
package imei

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reStrict    = regexp.MustCompile(`^\d{15}$`)
	reNonDigit  = regexp.MustCompile(`\D`)
	reSciNumber = regexp.MustCompile(`^\d+(?:[.,]\d+)?[eE]\+?\d+$`)
)

// IsValid is the authoritative check: exactly 15 ASCII digits whose
// 15th digit is the Luhn check digit over the first 14.
func IsValid(s string) bool {
	if !reStrict.MatchString(s) {
		return false
	}
	sum := 0
	for i := 0; i < 14; i++ {
		d := int(s[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return check == int(s[14]-'0')
}

// Digits strips everything that is not an ASCII digit.
func Digits(raw string) string {
	return reNonDigit.ReplaceAllString(raw, "")
}

// Sanitize is the lenient pre-parse filter: strips everything that is not a
// digit, accepts 14..16 digits and truncates to the first 15. Returns the
// candidate and whether it passed both the length window and the Luhn check.
// Spreadsheet exports routinely pad or cut a digit; the strict checker stays
// the gate for persistence.
func Sanitize(raw string) (string, bool) {
	digits := Digits(raw)
	if len(digits) < 14 || len(digits) > 16 {
		return digits, false
	}
	if len(digits) > 15 {
		digits = digits[:15]
	}
	return digits, IsValid(digits)
}

// RecoverScientific converts a cell that Excel coerced into a float
// ("3.59985E+14") back into a plain digit string. Input that does not look
// like scientific notation is returned unchanged.
func RecoverScientific(raw string) string {
	s := strings.TrimSpace(raw)
	if !reSciNumber.MatchString(s) {
		return raw
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return raw
	}
	return strconv.FormatFloat(f, 'f', 0, 64)
}
