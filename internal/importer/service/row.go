package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/imei"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
)

// Column aliases accepted per logical field. Header lookup is normalized
// (case, accents, punctuation) so "Título", "titulo" and "TITULO " all hit.
var (
	titleAliases   = []string{"Título", "Produto", "Descricao", "Descrição", "Nome"}
	imeiAliases    = []string{"IMEI 1", "IMEI", "IMEI1"}
	serialAliases  = []string{"Serial"}
	batteryAliases = []string{"% Bateria", "Bateria", "Battery"}
)

var (
	reAlnum      = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reStorageRow = regexp.MustCompile(`(?i)(\d+)\s*(gb|g)\b`)
	reAppleModel = regexp.MustCompile(`(?i)\b(iphone\s*(?:se|xr|xs(?:\s*max)?|x|\d{1,2}e?)(?:\s*(?:pro\s*max|pro|plus|mini|max))?|ipad(?:\s*(?:pro|air|mini))?|apple\s*watch(?:\s*(?:ultra|se|series))?\s*\d*|airpods(?:\s*(?:pro|max))?|macbook(?:\s*(?:pro|air))?)\b`)

	headerFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

var brandKeywords = []struct {
	keys  []string
	brand string
}{
	{[]string{"iphone", "apple"}, "Apple"},
	{[]string{"samsung", "galaxy"}, "Samsung"},
	{[]string{"motorola", "moto"}, "Motorola"},
	{[]string{"xiaomi", "redmi"}, "Xiaomi"},
	{[]string{"huawei", "honor"}, "Huawei"},
	{[]string{"lg"}, "LG"},
	{[]string{"sony"}, "Sony"},
	{[]string{"nokia"}, "Nokia"},
}

// genericColors is the short keyword list used for non-Apple titles.
var genericColors = []string{"preto", "branco", "azul", "verde", "vermelho"}

func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if out, _, err := transform.String(headerFold, s); err == nil {
		s = out
	}
	s = reAlnum.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveField finds the first alias present in the record, by exact key
// first and by normalized key second. Lookup is order-independent with
// respect to the record's own field order.
func resolveField(rec map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v, ok := rec[a]; ok {
			return strings.TrimSpace(v)
		}
	}
	for _, a := range aliases {
		want := normHeaderKey(a)
		for k, v := range rec {
			if normHeaderKey(k) == want {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// DetectBrand classifies a title via the keyword table. Unknown brands come
// back as "Desconhecida" with ok=false.
func DetectBrand(title string) (string, bool) {
	t := strings.ToLower(title)
	for _, b := range brandKeywords {
		for _, k := range b.keys {
			if strings.Contains(t, k) {
				return b.brand, true
			}
		}
	}
	return "Desconhecida", false
}

// extractModel pulls a model name out of the title: a dedicated pattern for
// Apple products, the first two words of at least three characters for
// everything else.
func extractModel(brand, title string) string {
	if brand == "Apple" {
		if m := reAppleModel.FindString(title); m != "" {
			return strings.Join(strings.Fields(m), " ")
		}
		return ""
	}
	var words []string
	for _, w := range strings.Fields(title) {
		if len([]rune(w)) >= 3 {
			words = append(words, w)
			if len(words) == 2 {
				break
			}
		}
	}
	return strings.Join(words, " ")
}

// extractStorage takes the maximum capacity mentioned in the title.
func extractStorage(title string) (int, bool) {
	max := 0
	found := false
	for _, m := range reStorageRow.FindAllStringSubmatch(title, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			found = true
			if n > max {
				max = n
			}
		}
	}
	return max, found
}

// extractColor scans title tokens: the full color table for Apple devices,
// the short generic list otherwise.
func extractColor(brand, title string) (string, bool) {
	for _, tok := range strings.Fields(title) {
		if brand == "Apple" {
			if c, ok := catalog.LookupColor(tok); ok {
				return c, true
			}
			continue
		}
		lower := strings.ToLower(tok)
		for _, g := range genericColors {
			if lower == g {
				return catalog.NormalizeColor(lower), true
			}
		}
	}
	return "", false
}

// ParseRow turns one spreadsheet row into a ParsedItem. It never fails:
// missing or mangled fields lower the confidence score and push the row to
// REVIEW_REQUIRED instead.
func ParseRow(rec map[string]string, batchID string) model.ParsedItem {
	title := resolveField(rec, titleAliases)
	rawIMEI := resolveField(rec, imeiAliases)
	serial := resolveField(rec, serialAliases)
	rawBattery := resolveField(rec, batteryAliases)

	item := model.ParsedItem{
		Serial:        serial,
		TitleOriginal: title,
		ImportBatchID: batchID,
		BatteryPct:    100,
	}

	var scores []float64

	// IMEI: recover spreadsheet float coercion, then the lenient window
	// check, then the strict Luhn gate.
	recovered := imei.RecoverScientific(rawIMEI)
	digits, valid := imei.Sanitize(recovered)
	item.IMEI = digits
	inWindow := false
	if n := len(imei.Digits(recovered)); n >= 14 && n <= 16 {
		inWindow = true
	}
	switch {
	case inWindow && valid:
		scores = append(scores, 1.0)
	case inWindow:
		scores = append(scores, 0.3)
	default:
		scores = append(scores, 0.0)
	}

	brand, brandKnown := DetectBrand(title)
	item.Brand = brand
	if brandKnown {
		scores = append(scores, 1.0)
	} else {
		scores = append(scores, 0.0)
	}

	item.Model = extractModel(brand, title)
	if item.Model != "" {
		scores = append(scores, 1.0)
	} else {
		scores = append(scores, 0.0)
	}

	if gb, ok := extractStorage(title); ok {
		item.StorageGB = gb
		item.Storage = strconv.Itoa(gb) + "GB"
		scores = append(scores, 1.0)
	} else {
		scores = append(scores, 0.5)
	}

	if color, ok := extractColor(brand, title); ok {
		item.Color = color
		scores = append(scores, 1.0)
	} else {
		scores = append(scores, 0.5)
	}

	// condition never fails, it has a default; constant partial credit
	item.Condition = catalog.NormalizeCondition(title, catalog.ConditionSeminovo)
	scores = append(scores, 0.9)

	switch {
	case rawBattery == "":
		scores = append(scores, 0.8)
	default:
		pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(rawBattery), "%"))
		if err == nil && pct >= 0 && pct <= 100 {
			item.BatteryPct = pct
			scores = append(scores, 1.0)
		} else {
			scores = append(scores, 0.0)
		}
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	item.ParseConfidence = math.Round(sum/float64(len(scores))*100) / 100

	if !brandKnown || item.Model == "" || item.IMEI == "" || !valid || item.ParseConfidence < 0.70 {
		item.Status = model.StatusReviewRequired
	} else {
		item.Status = model.StatusReady
	}
	return item
}
