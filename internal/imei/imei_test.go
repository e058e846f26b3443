package imei

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkDigit recomputes the Luhn check digit for a 14-digit prefix.
func checkDigit(t *testing.T, prefix string) int {
	t.Helper()
	require.Len(t, prefix, 14)
	sum := 0
	for i := 0; i < 14; i++ {
		d := int(prefix[i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"known valid", "490154203237518", true},
		{"known valid 2", "359984989957537", true},
		{"flipped check digit", "359984989957530", false},
		{"too short", "35998498995753", false},
		{"too long", "3599849899575371", false},
		{"non digit", "35998498995753x", false},
		{"empty", "", false},
		{"spaces", "359984989957537 ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValid(tc.in))
		})
	}
}

func TestIsValidConstructedCheckDigits(t *testing.T) {
	prefixes := []string{
		"35998498995753",
		"49015420323751",
		"00000000000000",
		"12345678901234",
	}
	for _, p := range prefixes {
		cd := checkDigit(t, p)
		assert.True(t, IsValid(p+strconv.Itoa(cd)), "prefix %s with correct check digit", p)
		assert.False(t, IsValid(p+strconv.Itoa((cd+1)%10)), "prefix %s with flipped check digit", p)
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		digits string
		ok     bool
	}{
		{"clean valid", "359984989957537", "359984989957537", true},
		{"formatted", "35-99849899-57537", "359984989957537", true},
		{"sixteen digits truncated", "3599849899575371", "359984989957537", true},
		{"fourteen digits fails luhn as 14", "35998498995753", "35998498995753", false},
		{"too short", "1234567890123", "1234567890123", false},
		{"too long", "35998498995753712", "35998498995753712", false},
		{"garbage", "abc", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			digits, ok := Sanitize(tc.in)
			assert.Equal(t, tc.digits, digits)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestRecoverScientific(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3.59985E+14", "359985000000000"},
		{"3,59985E+14", "359985000000000"},
		{"4.9015420323752E+14", "490154203237520"},
		{"359984989957537", "359984989957537"},
		{"not a number", "not a number"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RecoverScientific(tc.in), "input %q", tc.in)
	}
}
