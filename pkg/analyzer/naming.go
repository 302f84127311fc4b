package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxNameLength is the longest file name considered reasonable
const maxNameLength = 100

var (
	// Characters outside the permissive word/space/dash/underscore/
	// dot/bracket set. \p{L}\p{N} keeps non-Latin filenames legal.
	specialCharsRe = regexp.MustCompile(`[^\p{L}\p{N}\s\-_.()\[\]]`)

	// Stem made solely of digits and separators
	numberSequenceRe = regexp.MustCompile(`^[\d_\-\s]+$`)

	// Trailing numeric-copy suffix like "(1)", "[2]" or "-3"
	copySuffixRe = regexp.MustCompile(`\s*[(\[]?\d+[)\]]?$`)

	// Trailing "copy" marker, including localized variants
	copyWordRe = regexp.MustCompile(`(?i)\s*-?\s*(copy|副本|复制)\s*\d*$`)

	// Temp-file prefix
	tempPrefixRe = regexp.MustCompile(`(?i)^(temp|tmp|~)`)
)

// checkNamingIssues returns the independent issue tags a file name
// accumulates; an empty slice means the name is unremarkable
func checkNamingIssues(name string) []string {
	var issues []string
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	if specialCharsRe.MatchString(stem) {
		issues = append(issues, "contains special characters")
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		issues = append(issues, "name too long")
	}

	if numberSequenceRe.MatchString(stem) {
		issues = append(issues, "meaningless number sequence")
	}

	if copySuffixRe.MatchString(stem) || copyWordRe.MatchString(stem) {
		issues = append(issues, "copy pattern detected")
	}

	if tempPrefixRe.MatchString(stem) {
		issues = append(issues, "temporary file pattern")
	}

	return issues
}
