package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/tidynorris/pkg/models"
)

// JSONFormatter formats results as JSON for automation and scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONScanReport is the document emitted for a scan
type JSONScanReport struct {
	ScanID      string               `json:"scan_id"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt time.Time            `json:"completed_at"`
	Summary     JSONScanSummary      `json:"summary"`
	FileTypes   []JSONExtensionStats `json:"file_types,omitempty"`
}

// JSONScanSummary carries the scan totals
type JSONScanSummary struct {
	TotalFiles       int    `json:"total_files"`
	TotalDirectories int    `json:"total_directories"`
	TotalSizeBytes   int64  `json:"total_size_bytes"`
	TotalSizeHuman   string `json:"total_size_human"`
	EmptyDirectories int    `json:"empty_directories"`
	DeepestDepth     int    `json:"deepest_depth"`
	DurationMs       int64  `json:"duration_ms"`
}

// JSONExtensionStats carries per-extension aggregates
type JSONExtensionStats struct {
	Extension      string `json:"extension"`
	Count          int    `json:"count"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
}

// JSONAnalysisReport is the document emitted for an analysis
type JSONAnalysisReport struct {
	ScanID           string                 `json:"scan_id"`
	AnalyzedAt       time.Time              `json:"analyzed_at"`
	Duplicates       []JSONDuplicateGroup   `json:"duplicates,omitempty"`
	LargeFiles       []models.LargeFile     `json:"large_files,omitempty"`
	StaleFiles       []models.StaleFile     `json:"stale_files,omitempty"`
	ChaoticNaming    []models.ChaoticNaming `json:"chaotic_naming,omitempty"`
	EmptyDirectories []string               `json:"empty_directories,omitempty"`
	WastedBytes      int64                  `json:"wasted_bytes"`
}

// JSONDuplicateGroup carries one duplicate group
type JSONDuplicateGroup struct {
	Digest      string   `json:"digest"`
	SizeBytes   int64    `json:"size_bytes"`
	Count       int      `json:"count"`
	WastedBytes int64    `json:"wasted_bytes"`
	Files       []string `json:"files"`
}

// JSONPlanReport is the document emitted for an organization plan
type JSONPlanReport struct {
	DryRun     bool               `json:"dry_run"`
	Moves      int                `json:"moves"`
	TotalBytes int64              `json:"total_bytes"`
	Entries    []models.PlanEntry `json:"entries"`
}

// JSONExecutionReport is the document emitted after applying a batch
type JSONExecutionReport struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ScanReport renders the scan summary
func (f *JSONFormatter) ScanReport(w io.Writer, result *models.ScanResult) error {
	doc := JSONScanReport{
		ScanID:      result.ScanID,
		StartedAt:   result.StartedAt,
		CompletedAt: result.CompletedAt,
		Summary: JSONScanSummary{
			TotalFiles:       result.Summary.TotalFiles,
			TotalDirectories: result.Summary.TotalDirectories,
			TotalSizeBytes:   result.Summary.TotalSizeBytes,
			TotalSizeHuman:   models.FormatBytes(result.Summary.TotalSizeBytes),
			EmptyDirectories: result.Summary.EmptyDirectories,
			DeepestDepth:     result.Summary.DeepestDepth,
			DurationMs:       result.Summary.Duration.Milliseconds(),
		},
	}
	for _, ft := range result.Summary.FileTypes {
		doc.FileTypes = append(doc.FileTypes, JSONExtensionStats{
			Extension:      ft.Extension,
			Count:          ft.Count,
			TotalSizeBytes: ft.TotalSizeBytes,
		})
	}
	return encode(w, doc)
}

// AnalysisReport renders detected issues
func (f *JSONFormatter) AnalysisReport(w io.Writer, result *models.AnalysisResult) error {
	doc := JSONAnalysisReport{
		ScanID:        result.ScanID,
		AnalyzedAt:    result.AnalyzedAt,
		LargeFiles:    result.LargeFiles,
		StaleFiles:    result.StaleFiles,
		ChaoticNaming: result.ChaoticNaming,
		WastedBytes:   result.TotalWastedByDuplicates(),
	}
	for i := range result.Duplicates {
		g := &result.Duplicates[i]
		doc.Duplicates = append(doc.Duplicates, JSONDuplicateGroup{
			Digest:      g.Digest,
			SizeBytes:   g.SizeBytes,
			Count:       g.Count(),
			WastedBytes: g.WastedBytes(),
			Files:       g.Files,
		})
	}
	for _, ed := range result.EmptyDirectories {
		doc.EmptyDirectories = append(doc.EmptyDirectories, ed.Path)
	}
	return encode(w, doc)
}

// PlanReport renders an organization plan before execution
func (f *JSONFormatter) PlanReport(w io.Writer, plan models.OrganizationPlan, dryRun bool) error {
	doc := JSONPlanReport{
		DryRun:     dryRun,
		Moves:      len(plan),
		TotalBytes: plan.TotalBytes(),
		Entries:    plan,
	}
	return encode(w, doc)
}

// ExecutionReport renders the outcome tally of an applied batch
func (f *JSONFormatter) ExecutionReport(w io.Writer, stats models.ExecutionStats) error {
	return encode(w, JSONExecutionReport{
		Success: stats.Success,
		Failed:  stats.Failed,
		Skipped: stats.Skipped,
	})
}

// Error reports a fatal error
func (f *JSONFormatter) Error(w io.Writer, err error) error {
	return encode(w, map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

func encode(w io.Writer, doc any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
