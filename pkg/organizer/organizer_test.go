package organizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/tidynorris/pkg/models"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestOrganizer() *Organizer {
	o := New(nil)
	o.now = func() time.Time { return fixedNow }
	return o
}

func file(path string, accessedDaysAgo int) models.FileRecord {
	return models.FileRecord{
		Path:       path,
		Name:       filepath.Base(path),
		Extension:  filepath.Ext(path),
		SizeBytes:  10,
		CreatedAt:  fixedNow,
		AccessedAt: fixedNow.AddDate(0, 0, -accessedDaysAgo),
	}
}

// suggestOne runs Suggest over a single file and returns the folder it
// landed in, or "" if no rule matched
func suggestOne(t *testing.T, o *Organizer, f models.FileRecord) (string, string) {
	t.Helper()
	scan := &models.ScanResult{Files: []models.FileRecord{f}}
	suggestions := o.Suggest(context.Background(), scan)
	if len(suggestions) == 0 {
		return "", ""
	}
	require.Len(t, suggestions, 1)
	for folder, entries := range suggestions {
		require.Len(t, entries, 1)
		return folder, entries[0].Reason
	}
	return "", ""
}

func TestDateRule(t *testing.T) {
	o := newTestOrganizer()

	tests := []struct {
		name string
		file string
		want string
	}{
		{"Dashes", "report_2024-03-15.pdf", "Archives/2024/03"},
		{"Compact", "IMG20240315.heic", "Archives/2024/03"},
		{"Underscores", "backup_2023_12_01.tar.gz", "Archives/2023/12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, _ := suggestOne(t, o, file("/downloads/"+tt.file, 0))
			assert.Equal(t, tt.want, folder)
		})
	}
}

func TestDateRuleRejectsImplausibleDates(t *testing.T) {
	o := newTestOrganizer()

	// Month 13 cannot be a date; the extension rule should pick it up
	folder, _ := suggestOne(t, o, file("/downloads/report_2024-13-40.pdf", 0))
	assert.Equal(t, "Documents/PDFs", folder)
}

func TestExtensionRule(t *testing.T) {
	o := newTestOrganizer()

	tests := []struct {
		file string
		want string
	}{
		{"notes.txt", "Documents/Text"},
		{"photo.jpg", "Images"},
		{"movie.mkv", "Videos"},
		{"song.mp3", "Audio"},
		{"main.go", "Code/Go"},
		{"data.json", "Data"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			folder, _ := suggestOne(t, o, file("/stuff/"+tt.file, 0))
			assert.Equal(t, tt.want, folder)
		})
	}
}

func TestUnknownExtensionNoSuggestion(t *testing.T) {
	o := newTestOrganizer()
	folder, _ := suggestOne(t, o, file("/stuff/blob.xyz", 0))
	assert.Empty(t, folder)
}

func TestScreenshotRule(t *testing.T) {
	o := newTestOrganizer()

	// .xyz keeps the extension rule out of the way; real screenshots are
	// .png and would hit the extension rule first
	folder, _ := suggestOne(t, o, file("/desktop/screenshot-login.xyz", 0))
	assert.Equal(t, "Images/Screenshots/2025-06", folder)
}

func TestScreenshotBeatenByExtensionRule(t *testing.T) {
	o := newTestOrganizer()
	folder, _ := suggestOne(t, o, file("/desktop/Screenshot 2025-01-02.png", 0))
	assert.Equal(t, "Archives/2025/01", folder, "date rule outranks both")
}

func TestStaleDownloadRule(t *testing.T) {
	o := newTestOrganizer()

	t.Run("OldDownload", func(t *testing.T) {
		folder, reason := suggestOne(t, o, file("/home/u/Downloads/setup.xyz", 45))
		assert.Equal(t, "Archives/Old Downloads", folder)
		assert.Contains(t, reason, "Old download")
	})

	t.Run("FreshDownload", func(t *testing.T) {
		folder, _ := suggestOne(t, o, file("/home/u/Downloads/setup.xyz", 10))
		assert.Empty(t, folder)
	})

	t.Run("NotADownloadFolder", func(t *testing.T) {
		folder, _ := suggestOne(t, o, file("/home/u/stuff/setup.xyz", 45))
		assert.Empty(t, folder)
	})
}

func TestProjectRule(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "invoicer")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "go.mod"), []byte("module invoicer\n"), 0644))

	o := newTestOrganizer()
	scan := &models.ScanResult{
		Files: []models.FileRecord{
			file(filepath.Join(root, "invoicer-notes.txt"), 0),
		},
		Directories: []models.DirectoryRecord{
			{Path: projectDir, Name: "invoicer", Depth: 1},
		},
	}

	suggestions := o.Suggest(context.Background(), scan)
	require.Contains(t, suggestions, "Projects/invoicer")
	assert.Equal(t, "Matches project 'invoicer'", suggestions["Projects/invoicer"][0].Reason)
}

func TestProjectRuleOutranksExtension(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "invoicer")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "package.json"), []byte("{}"), 0644))

	o := newTestOrganizer()
	scan := &models.ScanResult{
		Files: []models.FileRecord{
			file(filepath.Join(root, "invoicer-report.pdf"), 0),
		},
		Directories: []models.DirectoryRecord{
			{Path: projectDir, Name: "invoicer", Depth: 1},
		},
	}

	suggestions := o.Suggest(context.Background(), scan)
	assert.Contains(t, suggestions, "Projects/invoicer")
	assert.NotContains(t, suggestions, "Documents/PDFs")
}

func TestProjectTokensLongestFirst(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"app", "application"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0644))
	}

	o := newTestOrganizer()
	scan := &models.ScanResult{
		Files: []models.FileRecord{
			file(filepath.Join(root, "application-design.xyz"), 0),
		},
		Directories: []models.DirectoryRecord{
			{Path: filepath.Join(root, "app"), Name: "app", Depth: 1},
			{Path: filepath.Join(root, "application"), Name: "application", Depth: 1},
		},
	}

	suggestions := o.Suggest(context.Background(), scan)
	assert.Contains(t, suggestions, "Projects/application", "longer token wins")
	assert.NotContains(t, suggestions, "Projects/app")
}

func TestPlanDeterministicOrder(t *testing.T) {
	o := newTestOrganizer()
	suggestions := map[string][]models.Suggestion{
		"Images": {
			{File: file("/z/b.jpg", 0), Reason: "File type: .jpg"},
			{File: file("/a/a.jpg", 0), Reason: "File type: .jpg"},
		},
		"Audio": {
			{File: file("/m/song.mp3", 0), Reason: "File type: .mp3"},
		},
	}

	plan := o.Plan(suggestions, "/organized")

	require.Len(t, plan, 3)
	assert.Equal(t, "/m/song.mp3", plan[0].Source, "folders in sorted order")
	assert.Equal(t, filepath.Join("/organized", "Audio", "song.mp3"), plan[0].Target)
	assert.Equal(t, "/a/a.jpg", plan[1].Source, "sources sorted within a folder")
	assert.Equal(t, "/z/b.jpg", plan[2].Source)
}

func TestPlanCarriesSizes(t *testing.T) {
	o := newTestOrganizer()
	f := file("/stuff/photo.jpg", 0)
	f.SizeBytes = 1234

	plan := o.Plan(map[string][]models.Suggestion{
		"Images": {{File: f, Reason: "File type: .jpg"}},
	}, "/organized")

	require.Len(t, plan, 1)
	assert.Equal(t, int64(1234), plan[0].SizeBytes)
	assert.Equal(t, int64(1234), plan.TotalBytes())
}
