package service

import (
	"bytes"
	"encoding/csv"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
)

// templateHeader is the fixed header row of the downloadable import
// template. Plain UTF-8 comma-separated CSV, nothing more is promised.
var templateHeader = []string{"Título", "IMEI 1", "Serial", "% Bateria"}

var templateExample = []string{"iPhone 13 Pro 128GB Grafite Seminovo", "359984989957537", "F2LLD0ABC123", "95"}

// TemplateCSV renders the import template with one example row.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(templateHeader); err != nil {
		return nil, err
	}
	if err := w.Write(templateExample); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ErrorReportCSV renders commit error details for download.
func ErrorReportCSV(errs []model.CommitError) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"imei", "titulo", "motivo"}); err != nil {
		return nil, err
	}
	for _, e := range errs {
		if err := w.Write([]string{e.IMEI, e.Title, e.Reason}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
