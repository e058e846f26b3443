package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Condition of a device as the store classifies it.
type Condition string

const (
	ConditionNovo     Condition = "novo"
	ConditionSeminovo Condition = "seminovo"
	ConditionUsado    Condition = "usado"
)

var (
	reDigits  = regexp.MustCompile(`\d+`)
	reHyphens = regexp.MustCompile(`[-_]+`)

	foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Vendor spellings (ASCII-folded, hyphens as spaces) to the canonical
// display form used across the product screens.
var colorTable = map[string]string{
	"cinza espacial":    "Cinza-espacial",
	"space gray":        "Cinza-espacial",
	"space grey":        "Cinza-espacial",
	"grafite":           "Grafite",
	"graphite":          "Grafite",
	"dourado":           "Dourado",
	"gold":              "Dourado",
	"prata":             "Prateado",
	"prateado":          "Prateado",
	"silver":            "Prateado",
	"preto":             "Preto",
	"black":             "Preto",
	"meia noite":        "Meia-noite",
	"midnight":          "Meia-noite",
	"branco":            "Branco",
	"white":             "Branco",
	"estelar":           "Estelar",
	"starlight":         "Estelar",
	"azul":              "Azul",
	"blue":              "Azul",
	"azul sierra":       "Azul-Sierra",
	"sierra blue":       "Azul-Sierra",
	"azul pacifico":     "Azul-Pacífico",
	"pacific blue":      "Azul-Pacífico",
	"verde":             "Verde",
	"green":             "Verde",
	"verde alpino":      "Verde-alpino",
	"alpine green":      "Verde-alpino",
	"vermelho":          "Vermelho",
	"red":               "Vermelho",
	"product red":       "Vermelho",
	"rosa":              "Rosa",
	"pink":              "Rosa",
	"roxo":              "Roxo",
	"purple":            "Roxo",
	"lilas":             "Lilás",
	"amarelo":           "Amarelo",
	"yellow":            "Amarelo",
	"titanio natural":   "Titânio-natural",
	"natural titanium":  "Titânio-natural",
	"titanio azul":      "Titânio-azul",
	"blue titanium":     "Titânio-azul",
	"titanio preto":     "Titânio-preto",
	"black titanium":    "Titânio-preto",
	"titanio branco":    "Titânio-branco",
	"white titanium":    "Titânio-branco",
	"titanio deserto":   "Titânio-deserto",
	"desert titanium":   "Titânio-deserto",
}

// foldKey lowercases, strips accents and treats hyphens/underscores as
// spaces so "Cinza-Espacial", "cinza espacial" and "CINZA ESPACIAL" share
// one table key.
func foldKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(foldAccents, s); err == nil {
		s = out
	}
	s = reHyphens.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeStorage extracts a capacity in GB from free text: first run of
// digits, multiplied by 1024 when the text mentions TB. Returns false when
// the text carries no digits.
func NormalizeStorage(s string) (int, bool) {
	m := reDigits.FindString(s)
	if m == "" {
		return 0, false
	}
	n := 0
	for _, r := range m {
		n = n*10 + int(r-'0')
	}
	if strings.Contains(strings.ToLower(s), "tb") {
		n *= 1024
	}
	return n, true
}

// LookupColor reports the canonical form of a recognized color word.
func LookupColor(s string) (string, bool) {
	c, ok := colorTable[foldKey(s)]
	return c, ok
}

// NormalizeColor maps vendor color spellings onto the canonical display
// form. Unrecognized input passes through untouched.
func NormalizeColor(s string) string {
	if c, ok := LookupColor(s); ok {
		return c
	}
	return s
}

// NormalizeCondition classifies free text into a condition. The fallback is
// caller-supplied on purpose: spreadsheet rows default to seminovo while
// pasted supplier notes default to usado, and the two sources are not to be
// unified (different upstream assumptions).
func NormalizeCondition(s string, fallback Condition) Condition {
	t := foldKey(s)
	switch {
	case strings.Contains(t, "novo") && !strings.Contains(t, "semi"):
		return ConditionNovo
	case strings.Contains(t, "seminovo") || strings.Contains(t, "semi novo"):
		return ConditionSeminovo
	case strings.Contains(t, "usado"):
		return ConditionUsado
	case strings.Contains(t, "lacrado") || strings.Contains(t, "new"):
		return ConditionNovo
	case strings.Contains(t, "refurb") || strings.Contains(t, "recondicionado"):
		return ConditionSeminovo
	}
	return fallback
}
