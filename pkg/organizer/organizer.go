// Package organizer proposes a target folder per file using an ordered,
// first-match-wins rule chain, seeded by a fixed extension table and
// project names learned from the scanned tree itself.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sdejongh/tidynorris/pkg/logging"
	"github.com/sdejongh/tidynorris/pkg/models"
)

var (
	// Date pattern like 2024-01-15, 20240115 or 2024_01_15
	datePatternRe = regexp.MustCompile(`(20\d{2})[-_]?(0[1-9]|1[0-2])[-_]?(0[1-9]|[12]\d|3[01])`)

	// Platform screenshot naming conventions
	screenshotNameRe    = regexp.MustCompile(`^screen\s*shot.*\d{4}`)
	screenshotNameCJKRe = regexp.MustCompile(`^截屏\d{4}`)
)

// staleDownloadDays is the access age beyond which a file in a download
// folder is proposed for archiving
const staleDownloadDays = 30

// rule is one entry in the ordered chain. Match returns the target
// folder and a human-readable reason, or ok=false to fall through to
// the next rule.
type rule struct {
	name  string
	match func(o *Organizer, f *models.FileRecord) (folder, reason string, ok bool)
}

// Organizer builds organization suggestions for scanned files
type Organizer struct {
	logger logging.Logger
	rules  []rule

	// learned maps a project token to the directory it was learned from;
	// rebuilt on every Suggest run
	learned map[string]string

	// tokens holds the learned project tokens in match order: longest
	// first, then lexicographic, so two competing tokens always resolve
	// the same way
	tokens []string

	// now is swappable for deterministic tests
	now func() time.Time
}

// New creates an organizer with the default rule chain
func New(logger logging.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	o := &Organizer{
		logger:  logger,
		learned: make(map[string]string),
		now:     time.Now,
	}

	// Order is load-bearing: a file matching several rules is always
	// classified by the earliest one.
	o.rules = []rule{
		{name: "project", match: (*Organizer).matchProject},
		{name: "date", match: (*Organizer).matchDate},
		{name: "extension", match: (*Organizer).matchExtension},
		{name: "screenshot", match: (*Organizer).matchScreenshot},
		{name: "stale-download", match: (*Organizer).matchStaleDownload},
	}
	return o
}

// Suggest classifies every file in the scan result, returning proposals
// grouped by target folder. Files matching no rule are left out.
func (o *Organizer) Suggest(ctx context.Context, scan *models.ScanResult) map[string][]models.Suggestion {
	o.learnProjects(ctx, scan)

	suggestions := make(map[string][]models.Suggestion)
	for i := range scan.Files {
		f := &scan.Files[i]
		for _, r := range o.rules {
			folder, reason, ok := r.match(o, f)
			if !ok {
				continue
			}
			suggestions[folder] = append(suggestions[folder], models.Suggestion{
				File:   *f,
				Reason: reason,
			})
			break
		}
	}
	return suggestions
}

// Plan flattens grouped suggestions into an ordered move plan rooted at
// basePath. Target folders are visited in sorted order and files within
// a folder by source path, so the plan is deterministic.
func (o *Organizer) Plan(suggestions map[string][]models.Suggestion, basePath string) models.OrganizationPlan {
	folders := make([]string, 0, len(suggestions))
	for folder := range suggestions {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	var plan models.OrganizationPlan
	for _, folder := range folders {
		entries := suggestions[folder]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].File.Path < entries[j].File.Path
		})
		for _, s := range entries {
			plan = append(plan, models.PlanEntry{
				Source:    s.File.Path,
				Target:    filepath.Join(basePath, folder, s.File.Name),
				Reason:    s.Reason,
				SizeBytes: s.File.SizeBytes,
			})
		}
	}
	return plan
}

// learnProjects scans the directory records for project markers and
// registers each marked directory's name as a project token
func (o *Organizer) learnProjects(ctx context.Context, scan *models.ScanResult) {
	o.learned = make(map[string]string)

	for i := range scan.Directories {
		dir := &scan.Directories[i]
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir.Path, marker)); err == nil {
				o.learned[dir.Name] = dir.Path
				break
			}
		}
	}

	// Longest token first, lexicographic among equals. The tie-break is
	// deliberate: a filename matching two tokens must resolve the same
	// way on every run.
	o.tokens = make([]string, 0, len(o.learned))
	for token := range o.learned {
		o.tokens = append(o.tokens, token)
	}
	sort.Slice(o.tokens, func(i, j int) bool {
		if len(o.tokens[i]) != len(o.tokens[j]) {
			return len(o.tokens[i]) > len(o.tokens[j])
		}
		return o.tokens[i] < o.tokens[j]
	})

	o.logger.Debug(ctx, "learned project tokens", logging.Fields{"count": len(o.tokens)})
}

func (o *Organizer) matchProject(f *models.FileRecord) (string, string, bool) {
	nameLower := strings.ToLower(f.Name)
	for _, token := range o.tokens {
		if strings.Contains(nameLower, strings.ToLower(token)) {
			return "Projects/" + token, fmt.Sprintf("Matches project '%s'", token), true
		}
	}
	return "", "", false
}

func (o *Organizer) matchDate(f *models.FileRecord) (string, string, bool) {
	m := datePatternRe.FindStringSubmatch(f.Name)
	if m == nil {
		return "", "", false
	}
	year, month := m[1], m[2]
	return fmt.Sprintf("Archives/%s/%s", year, month),
		fmt.Sprintf("Date pattern detected: %s-%s", year, month), true
}

func (o *Organizer) matchExtension(f *models.FileRecord) (string, string, bool) {
	folder, ok := typeFolders[f.Extension]
	if !ok {
		return "", "", false
	}
	return folder, fmt.Sprintf("File type: %s", f.Extension), true
}

func (o *Organizer) matchScreenshot(f *models.FileRecord) (string, string, bool) {
	if !isScreenshot(f.Name) {
		return "", "", false
	}
	return "Images/Screenshots/" + f.CreatedAt.Format("2006-01"), "Screenshot detected", true
}

func (o *Organizer) matchStaleDownload(f *models.FileRecord) (string, string, bool) {
	parent := strings.ToLower(filepath.Dir(f.Path))
	if !strings.Contains(parent, "download") {
		return "", "", false
	}
	if f.DaysSinceAccess(o.now()) <= staleDownloadDays {
		return "", "", false
	}
	return "Archives/Old Downloads", fmt.Sprintf("Old download (>%d days)", staleDownloadDays), true
}

// isScreenshot reports whether a file name looks like a screenshot
func isScreenshot(name string) bool {
	nameLower := strings.ToLower(name)
	for _, keyword := range screenshotKeywords {
		if strings.Contains(nameLower, keyword) {
			return true
		}
	}
	return screenshotNameRe.MatchString(nameLower) || screenshotNameCJKRe.MatchString(nameLower)
}
