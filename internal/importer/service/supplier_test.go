package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/service"
)

const supplierBlock = `iPhone 13 Pro 128G grafite SEMINOVO (100%)
Qtd: 1
Garantia: 3 meses
IMEI 1: 0359984989957537
R$ 2.150,00
`

func TestParseSupplierTextRoundTrip(t *testing.T) {
	devices := service.ParseSupplierText(catalog.Default(), supplierBlock, 6)
	require.Len(t, devices, 1)

	d := devices[0]
	assert.Equal(t, "iPhone 13 Pro", d.Model)
	assert.Equal(t, "128GB", d.Storage)
	assert.Equal(t, "Grafite", d.Color)
	assert.Equal(t, catalog.ConditionUsado, d.Condition)
	assert.Equal(t, 100, d.BatteryPct)
	assert.Equal(t, "0359984989957537", d.IMEI)
	require.NotNil(t, d.Cost)
	assert.InDelta(t, 2150.00, *d.Cost, 1e-9)
	assert.Equal(t, 3, d.WarrantyMonths, "Garantia line overrides the batch default")
}

func TestParseSupplierTextMultipleBlocks(t *testing.T) {
	text := `iPhone 12 64GB Azul novo lacrado (87%)
IMEI 1: 359984989957537
R$ 1.800,00

iPhone 13 Mini 128GB Estelar
IMEI: 490154203237518
`
	devices := service.ParseSupplierText(catalog.Default(), text, 6)
	require.Len(t, devices, 2)

	assert.Equal(t, "iPhone 12", devices[0].Model)
	assert.Equal(t, catalog.ConditionNovo, devices[0].Condition)
	assert.Equal(t, 87, devices[0].BatteryPct)
	assert.Equal(t, "359984989957537", devices[0].IMEI)

	assert.Equal(t, "iPhone 13 Mini", devices[1].Model)
	assert.Equal(t, "490154203237518", devices[1].IMEI)
	assert.Equal(t, catalog.ConditionUsado, devices[1].Condition, "no keyword defaults to usado")
	assert.Equal(t, 100, devices[1].BatteryPct)
	assert.Nil(t, devices[1].Cost)
	assert.Equal(t, 6, devices[1].WarrantyMonths, "batch default applies without a Garantia line")
}

func TestParseSupplierTextDropsModelWithoutIMEI(t *testing.T) {
	// two model lines back to back, one IMEI after the second: the first
	// block never completes and is dropped silently
	text := `iPhone 12 64GB Azul
iPhone 13 Pro 256GB Grafite
IMEI 1: 359984989957537
`
	devices := service.ParseSupplierText(catalog.Default(), text, 6)
	require.Len(t, devices, 1)
	assert.Equal(t, "iPhone 13 Pro", devices[0].Model)
	assert.Equal(t, "359984989957537", devices[0].IMEI)
}

func TestParseSupplierTextBareIMEILine(t *testing.T) {
	text := `iPhone 13 Pro 256GB
359984989957537
`
	devices := service.ParseSupplierText(catalog.Default(), text, 6)
	require.Len(t, devices, 1)
	assert.Equal(t, "359984989957537", devices[0].IMEI)
}

func TestParseSupplierTextUnknownModelLineIgnored(t *testing.T) {
	// product-family word present but no catalog hit: no block is opened,
	// the IMEI that follows has nothing to attach to
	text := `iPhone do futuro 9000
IMEI 1: 359984989957537
`
	devices := service.ParseSupplierText(catalog.Default(), text, 6)
	assert.Empty(t, devices)
}

func TestParseSupplierTextEmptyInput(t *testing.T) {
	assert.Empty(t, service.ParseSupplierText(catalog.Default(), "", 6))
	assert.Empty(t, service.ParseSupplierText(catalog.Default(), "\n\n  \n", 6))
}

func TestSanitizeSupplierText(t *testing.T) {
	in := "iPhone 13\tPro\r\nIMEI 1:   359984989957537\r"
	want := "iPhone 13 Pro\nIMEI 1: 359984989957537\n"
	assert.Equal(t, want, service.SanitizeSupplierText(in))
}

func TestDeviceStats(t *testing.T) {
	text := `iPhone 12 64GB Azul
IMEI 1: 359984989957537
R$ 1.000,00
iPhone 13 Pro 128GB
IMEI 1: 359984989957530
R$ 500,50
iPhone 13 Pro 128GB
IMEI 1: 359984989957537
`
	devices := service.ParseSupplierText(catalog.Default(), text, 6)
	require.Len(t, devices, 3)

	stats := service.DeviceStats(devices)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Valid)
	assert.Equal(t, 1, stats.Invalid, "Luhn-invalid IMEI counted")
	assert.Equal(t, 1, stats.Duplicates)
	assert.InDelta(t, 1500.50, stats.TotalCost, 1e-9)
}
