package output

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/tidynorris/pkg/models"
)

// maxListedItems caps how many entries each issue section prints
const maxListedItems = 10

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	valueColor  = color.New(color.Bold)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// HumanFormatter formats results in human-readable format
type HumanFormatter struct{}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// ScanReport renders the scan summary
func (f *HumanFormatter) ScanReport(w io.Writer, result *models.ScanResult) error {
	s := result.Summary

	headerColor.Fprintf(w, "Scan %s\n", result.ScanID)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Files:             ")
	valueColor.Fprintf(w, "%d\n", s.TotalFiles)
	fmt.Fprintf(w, "  Directories:       ")
	valueColor.Fprintf(w, "%d\n", s.TotalDirectories)
	fmt.Fprintf(w, "  Total size:        ")
	valueColor.Fprintf(w, "%s\n", models.FormatBytes(s.TotalSizeBytes))
	fmt.Fprintf(w, "  Empty directories: %d\n", s.EmptyDirectories)
	fmt.Fprintf(w, "  Deepest level:     %d\n", s.DeepestDepth)
	fmt.Fprintf(w, "  Duration:          %s\n", s.Duration.Round(time.Millisecond))

	if len(s.FileTypes) > 0 {
		fmt.Fprintf(w, "\n")
		headerColor.Fprintf(w, "Top file types by size\n")
		fmt.Fprintf(w, "\n")
		for _, ft := range s.FileTypes {
			ext := ft.Extension
			if ext == "" {
				ext = "(none)"
			}
			fmt.Fprintf(w, "  %-12s %6d files  %12s\n",
				ext, ft.Count, models.FormatBytes(ft.TotalSizeBytes))
		}
	}

	return nil
}

// AnalysisReport renders detected issues
func (f *HumanFormatter) AnalysisReport(w io.Writer, result *models.AnalysisResult) error {
	if !result.HasIssues() {
		okColor.Fprintf(w, "No issues found.\n")
		return nil
	}

	if len(result.Duplicates) > 0 {
		headerColor.Fprintf(w, "Duplicate files\n")
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "  %d groups, ", len(result.Duplicates))
		warnColor.Fprintf(w, "%s wasted\n", models.FormatBytes(result.TotalWastedByDuplicates()))
		fmt.Fprintf(w, "\n")
		for i, group := range result.Duplicates {
			if i >= maxListedItems {
				dimColor.Fprintf(w, "  ... and %d more groups\n", len(result.Duplicates)-maxListedItems)
				break
			}
			fmt.Fprintf(w, "  %d copies x %s (%s wasted)\n",
				group.Count(), models.FormatBytes(group.SizeBytes), group.WastedHuman())
			for _, path := range group.Files {
				dimColor.Fprintf(w, "    %s\n", path)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.LargeFiles) > 0 {
		headerColor.Fprintf(w, "Large files\n")
		fmt.Fprintf(w, "\n")
		for i, lf := range result.LargeFiles {
			if i >= maxListedItems {
				dimColor.Fprintf(w, "  ... and %d more\n", len(result.LargeFiles)-maxListedItems)
				break
			}
			fmt.Fprintf(w, "  %12s  %s\n", lf.SizeHuman(), lf.Path)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.StaleFiles) > 0 {
		headerColor.Fprintf(w, "Stale files\n")
		fmt.Fprintf(w, "\n")
		for i, sf := range result.StaleFiles {
			if i >= maxListedItems {
				dimColor.Fprintf(w, "  ... and %d more\n", len(result.StaleFiles)-maxListedItems)
				break
			}
			fmt.Fprintf(w, "  %4d days  %s\n", sf.DaysStale, sf.Path)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.ChaoticNaming) > 0 {
		headerColor.Fprintf(w, "Chaotic names\n")
		fmt.Fprintf(w, "\n")
		for i, cn := range result.ChaoticNaming {
			if i >= maxListedItems {
				dimColor.Fprintf(w, "  ... and %d more\n", len(result.ChaoticNaming)-maxListedItems)
				break
			}
			fmt.Fprintf(w, "  %s\n", cn.Path)
			for _, issue := range cn.Issues {
				warnColor.Fprintf(w, "    - %s\n", issue)
			}
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.EmptyDirectories) > 0 {
		headerColor.Fprintf(w, "Empty directories\n")
		fmt.Fprintf(w, "\n")
		for i, ed := range result.EmptyDirectories {
			if i >= maxListedItems {
				dimColor.Fprintf(w, "  ... and %d more\n", len(result.EmptyDirectories)-maxListedItems)
				break
			}
			fmt.Fprintf(w, "  %s\n", ed.Path)
		}
		fmt.Fprintf(w, "\n")
	}

	headerColor.Fprintf(w, "Summary\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Duplicate groups:  %d\n", len(result.Duplicates))
	fmt.Fprintf(w, "  Large files:       %d\n", len(result.LargeFiles))
	fmt.Fprintf(w, "  Stale files:       %d\n", len(result.StaleFiles))
	fmt.Fprintf(w, "  Chaotic names:     %d\n", len(result.ChaoticNaming))
	fmt.Fprintf(w, "  Empty directories: %d\n", len(result.EmptyDirectories))

	return nil
}

// PlanReport renders an organization plan before execution
func (f *HumanFormatter) PlanReport(w io.Writer, plan models.OrganizationPlan, dryRun bool) error {
	if len(plan) == 0 {
		okColor.Fprintf(w, "Nothing to organize.\n")
		return nil
	}

	if dryRun {
		warnColor.Fprintf(w, "Dry run: no files will be moved.\n\n")
	}

	headerColor.Fprintf(w, "Organization plan: %d moves, %s\n",
		len(plan), models.FormatBytes(plan.TotalBytes()))
	fmt.Fprintf(w, "\n")

	lastDir := ""
	for _, entry := range plan {
		dir := targetFolder(entry)
		if dir != lastDir {
			valueColor.Fprintf(w, "  %s\n", dir)
			lastDir = dir
		}
		fmt.Fprintf(w, "    %s\n", entry.Source)
		dimColor.Fprintf(w, "      %s\n", entry.Reason)
	}

	return nil
}

// ExecutionReport renders the outcome tally of an applied batch
func (f *HumanFormatter) ExecutionReport(w io.Writer, stats models.ExecutionStats) error {
	fmt.Fprintf(w, "\n")
	okColor.Fprintf(w, "  Succeeded: %d\n", stats.Success)
	if stats.Failed > 0 {
		errorColor.Fprintf(w, "  Failed:    %d\n", stats.Failed)
	} else {
		fmt.Fprintf(w, "  Failed:    %d\n", stats.Failed)
	}
	fmt.Fprintf(w, "  Skipped:   %d\n", stats.Skipped)
	return nil
}

// Error reports a fatal error
func (f *HumanFormatter) Error(w io.Writer, err error) error {
	errorColor.Fprintf(w, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// targetFolder extracts the destination directory of a plan entry
func targetFolder(entry models.PlanEntry) string {
	return filepath.Dir(entry.Target)
}
