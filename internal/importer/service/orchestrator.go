package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/importer/model"
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/store"
)

// Orchestrator sequences preview -> human review -> commit. It is the only
// piece of the import flow that talks to persistence.
type Orchestrator struct {
	store       store.DeviceStore
	previewRows int
	log         zerolog.Logger
}

func NewOrchestrator(st store.DeviceStore, previewRows int, logger zerolog.Logger) *Orchestrator {
	if previewRows <= 0 {
		previewRows = 20
	}
	return &Orchestrator{store: st, previewRows: previewRows, log: logger}
}

// Preview parses a bounded prefix of the uploaded rows and flags rows whose
// IMEI is already persisted. A blank batchID gets a fresh one.
func (o *Orchestrator) Preview(ctx context.Context, rows []map[string]string, batchID string) (model.PreviewResult, error) {
	if batchID == "" {
		batchID = uuid.NewString()
	}

	limit := o.previewRows
	if limit > len(rows) {
		limit = len(rows)
	}

	items := make([]model.ParsedItem, 0, limit)
	imeis := make([]string, 0, limit)
	for _, rec := range rows[:limit] {
		item := ParseRow(rec, batchID)
		if item.IMEI != "" {
			imeis = append(imeis, item.IMEI)
		}
		items = append(items, item)
	}

	existing, err := o.store.ExistingIMEIs(ctx, imeis)
	if err != nil {
		return model.PreviewResult{}, err
	}

	summary := model.PreviewSummary{Total: len(rows), PreviewCount: len(items)}
	for i := range items {
		if items[i].IMEI != "" && existing[items[i].IMEI] {
			items[i].Status = model.StatusDuplicate
		}
		switch items[i].Status {
		case model.StatusReady:
			summary.Ready++
		case model.StatusReviewRequired:
			summary.ReviewRequired++
		case model.StatusDuplicate:
			summary.Duplicates++
		}
	}

	o.log.Info().
		Str("batch_id", batchID).
		Int("rows", len(rows)).
		Int("preview", len(items)).
		Int("ready", summary.Ready).
		Int("review", summary.ReviewRequired).
		Int("duplicates", summary.Duplicates).
		Msg("import preview")

	return model.PreviewResult{Items: items, Summary: summary, BatchID: batchID}, nil
}

// Commit inserts previously reviewed items. Items whose IMEI is already
// persisted (or repeated inside the batch) are counted as duplicates and
// excluded; review items without an IMEI are counted as errors and
// excluded. The remaining items go in as one batch: a store failure fails
// the whole commit, there is no partial success.
func (o *Orchestrator) Commit(ctx context.Context, items []model.ParsedItem, batchID string) (model.CommitResult, error) {
	summary := model.CommitSummary{Total: len(items), ErrorDetails: []model.CommitError{}}

	imeis := make([]string, 0, len(items))
	for _, it := range items {
		if it.IMEI != "" {
			imeis = append(imeis, it.IMEI)
		}
	}
	existing, err := o.store.ExistingIMEIs(ctx, imeis)
	if err != nil {
		return model.CommitResult{}, err
	}

	toInsert := make([]model.ParsedItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		switch {
		case it.IMEI != "" && existing[it.IMEI]:
			summary.Duplicates++
		case it.IMEI != "" && seen[it.IMEI]:
			summary.Duplicates++
		case it.Status == model.StatusReviewRequired && it.IMEI == "":
			summary.Errors++
			summary.ErrorDetails = append(summary.ErrorDetails, model.CommitError{
				Title:  it.TitleOriginal,
				Reason: "IMEI ausente",
			})
		default:
			if it.IMEI != "" {
				seen[it.IMEI] = true
			}
			if batchID != "" {
				it.ImportBatchID = batchID
			}
			toInsert = append(toInsert, it)
		}
	}

	created, err := o.store.InsertBatch(ctx, toInsert)
	if err != nil {
		o.log.Error().Err(err).Str("batch_id", batchID).Msg("import commit failed")
		return model.CommitResult{}, err
	}
	summary.Created = created

	o.log.Info().
		Str("batch_id", batchID).
		Int("total", summary.Total).
		Int("created", summary.Created).
		Int("duplicates", summary.Duplicates).
		Int("errors", summary.Errors).
		Msg("import commit")

	return model.CommitResult{Summary: summary}, nil
}
