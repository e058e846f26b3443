// Package model holds the intake data shapes. Everything here is ephemeral:
// created by a parse call, reviewed by a human, then persisted or dropped.
package model

import (
	"github.com/wendrick1998/outlet-vault-tracker-sub001/internal/catalog"
)

// Status routes a parsed row to automatic acceptance or human review.
type Status string

const (
	StatusReady          Status = "READY"
	StatusReviewRequired Status = "REVIEW_REQUIRED"
	StatusDuplicate      Status = "DUPLICATE"
)

// ParsedDevice is one device extracted from a pasted supplier text block.
type ParsedDevice struct {
	Model          string            `json:"model"`
	Storage        string            `json:"storage,omitempty"` // display form, e.g. "256GB"
	Color          string            `json:"color,omitempty"`
	Condition      catalog.Condition `json:"condition"`
	BatteryPct     int               `json:"battery_pct"`
	IMEI           string            `json:"imei"`
	Cost           *float64          `json:"cost,omitempty"`
	WarrantyMonths int               `json:"warranty_months"`
}

// ParsedItem is one spreadsheet row after parsing; the superset shape used
// for tabular import.
type ParsedItem struct {
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Storage         string            `json:"storage,omitempty"`
	StorageGB       int               `json:"storage_gb,omitempty"`
	Color           string            `json:"color,omitempty"`
	Condition       catalog.Condition `json:"condition"`
	BatteryPct      int               `json:"battery_pct"`
	IMEI            string            `json:"imei"`
	Serial          string            `json:"serial,omitempty"`
	Cost            *float64          `json:"cost,omitempty"`
	TitleOriginal   string            `json:"title_original"`
	ParseConfidence float64           `json:"parse_confidence"`
	ImportBatchID   string            `json:"import_batch_id"`
	Status          Status            `json:"status"`
	// DeviceModelID is resolved downstream against the device_models table;
	// the parser never sets it.
	DeviceModelID *string `json:"device_model_id,omitempty"`
}

// ParseStats summarizes a parsed batch. Recomputed on demand, never stored.
type ParseStats struct {
	Total      int     `json:"total"`
	Valid      int     `json:"valid"`
	Invalid    int     `json:"invalid"`
	Duplicates int     `json:"duplicates"`
	TotalCost  float64 `json:"total_cost"`
}

// PreviewSummary are the counts shown on the review screen.
type PreviewSummary struct {
	Total          int `json:"total"`
	PreviewCount   int `json:"preview_count"`
	Ready          int `json:"ready"`
	ReviewRequired int `json:"review_required"`
	Duplicates     int `json:"duplicates"`
}

// PreviewResult is the JSON shape of a preview call.
type PreviewResult struct {
	Items   []ParsedItem   `json:"items"`
	Summary PreviewSummary `json:"summary"`
	BatchID string         `json:"batch_id"`
}

// CommitError describes one row excluded from a commit.
type CommitError struct {
	IMEI   string `json:"imei,omitempty"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

// CommitSummary is the JSON shape of a commit call. Updated is always zero
// today (imports never update in place) but the field stays for the clients
// that already read this shape.
type CommitSummary struct {
	Total        int           `json:"total"`
	Created      int           `json:"created"`
	Updated      int           `json:"updated"`
	Duplicates   int           `json:"duplicates"`
	Errors       int           `json:"errors"`
	ErrorDetails []CommitError `json:"error_details"`
}

// CommitResult wraps the summary for the commit response body.
type CommitResult struct {
	Summary CommitSummary `json:"summary"`
}
