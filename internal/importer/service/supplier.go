// Package service implements the intake parsers and the import sequencing
// (preview, commit) on top of them.
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/imei"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/utils"
)

var (
	reModelStart = regexp.MustCompile(`(?i)iPhone|iPad|Apple Watch|AirPods|MacBook`)
	reIMEILine   = regexp.MustCompile(`(?i)IMEI\s*\d*:\s*(\d{14,16})`)
	reBareIMEI   = regexp.MustCompile(`\b\d{15}\b`)
	rePriceLine  = regexp.MustCompile(`(?i)R\$\s*([\d.,]+)`)
	reWarranty   = regexp.MustCompile(`(?i)Garantia:\s*(\d+)\s*mes`)
	reQty        = regexp.MustCompile(`(?i)Qtd:\s*(\d+)`)
	reBattery    = regexp.MustCompile(`\((\d{1,3})\s*%\)`)

	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// SanitizeSupplierText normalizes CRLF to LF, tabs to single spaces and
// collapses runs of spaces. Callers run it before ParseSupplierText; the
// parser itself does not re-sanitize.
func SanitizeSupplierText(text string) string {
	text = reCRLF.ReplaceAllString(text, "\n")
	text = reTabs.ReplaceAllString(text, " ")
	text = reMultiSpace.ReplaceAllString(text, " ")
	return text
}

// blockCondition reads the condition keyword off a model-start line. Supplier
// notes sell "seminovo" as used stock, so both map to usado here; only an
// explicit novo/lacrado marks a device as new. Absent any keyword the stock
// is assumed used.
func blockCondition(line string) catalog.Condition {
	t := strings.ToLower(line)
	switch {
	case strings.Contains(t, "seminovo") || strings.Contains(t, "semi novo"):
		return catalog.ConditionUsado
	case strings.Contains(t, "usado"):
		return catalog.ConditionUsado
	case strings.Contains(t, "novo") || strings.Contains(t, "lacrado"):
		return catalog.ConditionNovo
	case strings.Contains(t, "recondicionado"):
		return catalog.ConditionUsado
	}
	return catalog.ConditionUsado
}

// ParseSupplierText walks a pasted supplier block line by line and extracts
// one device per model/IMEI pair. A device is emitted only once both a
// matched model line and an IMEI have been seen; a new model line flushes
// the previous complete block, and a model line without an IMEI before the
// next model line is dropped silently. Malformed lines never fail the parse.
func ParseSupplierText(cat *catalog.Catalog, text string, defaultWarrantyMonths int) []model.ParsedDevice {
	out := []model.ParsedDevice{}

	var cur *model.ParsedDevice
	flush := func() {
		if cur != nil && cur.Model != "" && cur.IMEI != "" {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case reModelStart.MatchString(line):
			flush()
			m := cat.MatchModel(line)
			if m == nil {
				// unknown product family line: no new block is opened
				continue
			}
			d := model.ParsedDevice{
				Model:          m.Model,
				Color:          m.Color,
				Condition:      blockCondition(line),
				BatteryPct:     100,
				WarrantyMonths: defaultWarrantyMonths,
			}
			if m.HasStorage {
				d.Storage = fmt.Sprintf("%dGB", m.StorageGB)
			}
			if bm := reBattery.FindStringSubmatch(line); bm != nil {
				if pct, err := strconv.Atoi(bm[1]); err == nil && pct >= 0 && pct <= 100 {
					d.BatteryPct = pct
				}
			}
			cur = &d

		case reIMEILine.MatchString(line):
			if cur != nil {
				cur.IMEI = reIMEILine.FindStringSubmatch(line)[1]
			}

		case rePriceLine.MatchString(line):
			if raw := rePriceLine.FindStringSubmatch(line)[1]; cur != nil {
				if v, ok := utils.ParseFloatBR(raw); ok {
					cur.Cost = &v
				}
			}

		case reWarranty.MatchString(line):
			if cur != nil {
				if months, err := strconv.Atoi(reWarranty.FindStringSubmatch(line)[1]); err == nil {
					cur.WarrantyMonths = months
				}
			}

		case reQty.MatchString(line):
			// quantity is declared by some suppliers but carries no per-device
			// meaning here; recognized so it never falls into the bare-IMEI case

		default:
			if cur != nil && cur.IMEI == "" {
				if bare := reBareIMEI.FindString(line); bare != "" {
					cur.IMEI = bare
				}
			}
		}
	}
	flush()
	return out
}

// DeviceStats summarizes a supplier parse for the review screen.
func DeviceStats(devices []model.ParsedDevice) model.ParseStats {
	stats := model.ParseStats{Total: len(devices)}
	seen := make(map[string]bool, len(devices))
	for _, d := range devices {
		if imei.IsValid(d.IMEI) {
			stats.Valid++
		} else {
			stats.Invalid++
		}
		if seen[d.IMEI] {
			stats.Duplicates++
		}
		seen[d.IMEI] = true
		if d.Cost != nil {
			stats.TotalCost += *d.Cost
		}
	}
	return stats
}
