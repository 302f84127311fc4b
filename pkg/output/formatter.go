// Package output renders scan, analysis, plan and execution results for
// the terminal, either as human-readable text or as JSON for scripting.
package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/tidynorris/pkg/models"
)

// Formatter defines the interface for result rendering
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// ScanReport renders the scan summary
	ScanReport(w io.Writer, result *models.ScanResult) error

	// AnalysisReport renders detected issues
	AnalysisReport(w io.Writer, result *models.AnalysisResult) error

	// PlanReport renders an organization plan before execution
	PlanReport(w io.Writer, plan models.OrganizationPlan, dryRun bool) error

	// ExecutionReport renders the outcome tally of an applied batch
	ExecutionReport(w io.Writer, stats models.ExecutionStats) error

	// Error reports a fatal error
	Error(w io.Writer, err error) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case "human", "":
		return NewHumanFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}
