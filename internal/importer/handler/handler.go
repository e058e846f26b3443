// Package handler exposes the import flow over HTTP. Handlers are thin:
// decode, call the service, encode. Parsing rules live in the service.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/config"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/fileio"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/service"
)

// Preview handles POST /import/preview: multipart upload of a CSV/XLS/XLSX
// file, parsed and returned for human review. Nothing is persisted here.
func Preview(cfg config.Config, logger zerolog.Logger, orch *service.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := withRequestID(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		rows, err := fileio.ReadAnyMaps(file, header.Filename, atoi(r.FormValue("header_row"), 1))
		if err != nil {
			http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}

		res, err := orch.Preview(r.Context(), rows, r.FormValue("batch_id"))
		if err != nil {
			log.Error().Err(err).Msg("preview")
			http.Error(w, "preview failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, log, res)
		log.Info().
			Str("file", header.Filename).
			Int("rows", len(rows)).
			Dur("elapsed", time.Since(start)).
			Msg("preview done")
	}
}

type commitRequest struct {
	Items   []model.ParsedItem `json:"items"`
	BatchID string             `json:"batch_id"`
}

// Commit handles POST /import/commit: previously previewed (and possibly
// human-edited) items go to the store. Duplicates and empty-IMEI rows are
// reported in the summary, a store failure fails the whole call.
func Commit(logger zerolog.Logger, orch *service.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withRequestID(logger, r)

		defer r.Body.Close()
		var req commitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(req.Items) == 0 {
			http.Error(w, "no items to commit", http.StatusBadRequest)
			return
		}

		res, err := orch.Commit(r.Context(), req.Items, req.BatchID)
		if err != nil {
			log.Error().Err(err).Str("batch_id", req.BatchID).Msg("commit")
			http.Error(w, "commit failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, log, res)
	}
}

type supplierRequest struct {
	Text           string `json:"text"`
	WarrantyMonths int    `json:"warranty_months"`
}

type supplierResponse struct {
	Devices []model.ParsedDevice `json:"devices"`
	Stats   model.ParseStats     `json:"stats"`
}

// SupplierParse handles POST /supplier/parse: a pasted supplier text block
// is segmented into devices for review. Pure computation, nothing persisted.
func SupplierParse(cfg config.Config, logger zerolog.Logger, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withRequestID(logger, r)

		defer r.Body.Close()
		var req supplierRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.WarrantyMonths <= 0 {
			req.WarrantyMonths = cfg.DefaultWarrantyMonths
		}

		text := service.SanitizeSupplierText(req.Text)
		devices := service.ParseSupplierText(cat, text, req.WarrantyMonths)

		writeJSON(w, log, supplierResponse{
			Devices: devices,
			Stats:   service.DeviceStats(devices),
		})
		log.Info().Int("devices", len(devices)).Msg("supplier parse done")
	}
}

// Template handles GET /import/template: the downloadable CSV skeleton.
func Template(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := withRequestID(logger, r)
		b, err := service.TemplateCSV()
		if err != nil {
			http.Error(w, "template failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="modelo_importacao.csv"`)
		if _, err := w.Write(b); err != nil {
			log.Error().Err(err).Msg("write template")
		}
	}
}
