package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/tidynorris/pkg/models"
)

// buildTree creates the fixture used by most scanner tests:
//
//	root/
//	  a.txt          (5 bytes)
//	  b.log          (3 bytes)
//	  .hidden.txt    (6 bytes)
//	  node_modules/  dep.js (4 bytes)
//	  sub/           c.txt (7 bytes)
//	    empty/
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "a.txt", 5)
	writeFile(t, root, "b.log", 3)
	writeFile(t, root, ".hidden.txt", 6)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0755))
	writeFile(t, filepath.Join(root, "node_modules"), "dep.js", 4)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "empty"), 0755))
	writeFile(t, filepath.Join(root, "sub"), "c.txt", 7)

	return root
}

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0644))
}

func baseConfig(roots ...string) models.ScanConfig {
	return models.ScanConfig{
		RootPaths:       roots,
		Recursive:       true,
		ExcludePatterns: []string{"node_modules"},
	}
}

func fileNames(result *models.ScanResult) []string {
	names := make([]string, 0, len(result.Files))
	for i := range result.Files {
		names = append(names, result.Files[i].Name)
	}
	return names
}

func TestScanBasic(t *testing.T) {
	root := buildTree(t)

	result, err := New(baseConfig(root), nil).Scan(context.Background(), nil)
	require.NoError(t, err)
	require.True(t, result.IsComplete())

	names := fileNames(result)
	assert.ElementsMatch(t, []string{"a.txt", "b.log", "c.txt"}, names)

	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, 2, result.Summary.TotalDirectories) // sub, empty
	assert.Equal(t, int64(15), result.Summary.TotalSizeBytes)
	assert.Equal(t, 1, result.Summary.EmptyDirectories)
	assert.Equal(t, 2, result.Summary.DeepestDepth)
	assert.Len(t, result.ScanID, 8)
}

func TestScanDirectoryRecords(t *testing.T) {
	root := buildTree(t)

	result, err := New(baseConfig(root), nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	byPath := make(map[string]models.DirectoryRecord)
	for _, d := range result.Directories {
		byPath[d.Path] = d
	}

	rootRec, ok := byPath[root]
	require.True(t, ok)
	assert.Equal(t, 2, rootRec.FileCount, "direct files only")
	assert.Equal(t, 2, rootRec.SubdirCount, "node_modules excluded, sub counted, hidden none")
	assert.Equal(t, int64(15), rootRec.TotalSizeBytes, "cumulative subtree size")
	assert.Equal(t, 0, rootRec.Depth)

	subRec := byPath[filepath.Join(root, "sub")]
	assert.Equal(t, 1, subRec.FileCount)
	assert.Equal(t, 1, subRec.SubdirCount)
	assert.Equal(t, int64(7), subRec.TotalSizeBytes)
	assert.Equal(t, 1, subRec.Depth)

	emptyRec := byPath[filepath.Join(root, "sub", "empty")]
	assert.True(t, emptyRec.IsEmpty())
	assert.Equal(t, 2, emptyRec.Depth)
}

func TestScanPostOrder(t *testing.T) {
	root := buildTree(t)

	result, err := New(baseConfig(root), nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	// Every directory record must come after the records of all of its
	// subdirectories; the root is therefore last.
	positions := make(map[string]int)
	for i, d := range result.Directories {
		positions[d.Path] = i
	}

	assert.Less(t, positions[filepath.Join(root, "sub", "empty")], positions[filepath.Join(root, "sub")])
	assert.Less(t, positions[filepath.Join(root, "sub")], positions[root])
	assert.Equal(t, len(result.Directories)-1, positions[root])
}

func TestScanHidden(t *testing.T) {
	root := buildTree(t)

	cfg := baseConfig(root)
	cfg.IncludeHidden = true

	result, err := New(cfg, nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, fileNames(result), ".hidden.txt")
	assert.Equal(t, 4, result.Summary.TotalFiles)
}

func TestScanExcludeSuffixPattern(t *testing.T) {
	root := buildTree(t)

	cfg := baseConfig(root)
	cfg.ExcludePatterns = append(cfg.ExcludePatterns, "*.log")

	result, err := New(cfg, nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.NotContains(t, fileNames(result), "b.log")
}

func TestScanMaxDepth(t *testing.T) {
	root := buildTree(t)

	depth := 1
	cfg := baseConfig(root)
	cfg.MaxDepth = &depth

	result, err := New(cfg, nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	// sub is visited (depth 1); empty (depth 2) is still counted as a
	// subdirectory of sub but never descended, so it gets no record
	byPath := make(map[string]models.DirectoryRecord)
	for _, d := range result.Directories {
		byPath[d.Path] = d
	}

	subRec, ok := byPath[filepath.Join(root, "sub")]
	require.True(t, ok)
	assert.Equal(t, 1, subRec.SubdirCount)

	_, ok = byPath[filepath.Join(root, "sub", "empty")]
	assert.False(t, ok)

	assert.Contains(t, fileNames(result), "c.txt")
}

func TestScanNonRecursive(t *testing.T) {
	root := buildTree(t)

	cfg := baseConfig(root)
	cfg.Recursive = false

	result, err := New(cfg, nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt", "b.log"}, fileNames(result))
	assert.Equal(t, 0, result.Summary.TotalDirectories)
}

func TestScanFileRoot(t *testing.T) {
	root := buildTree(t)
	filePath := filepath.Join(root, "a.txt")

	result, err := New(baseConfig(filePath), nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, filePath, result.Files[0].Path)
	assert.Equal(t, ".txt", result.Files[0].Extension)
	assert.Equal(t, int64(5), result.Files[0].SizeBytes)
}

func TestScanSkipsMissingRoot(t *testing.T) {
	root := buildTree(t)
	missing := filepath.Join(root, "does-not-exist")

	result, err := New(baseConfig(missing, root), nil).Scan(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.TotalFiles)
}

func TestScanAllRootsMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := New(baseConfig(missing), nil).Scan(context.Background(), nil)
	assert.Error(t, err)
}

func TestScanInvalidConfig(t *testing.T) {
	_, err := New(models.ScanConfig{}, nil).Scan(context.Background(), nil)
	assert.Error(t, err)
}

func TestScanProgressCallback(t *testing.T) {
	root := buildTree(t)

	var counts []int
	progress := func(count int, path string) {
		counts = append(counts, count)
		assert.NotEmpty(t, path)
	}

	_, err := New(baseConfig(root), nil).Scan(context.Background(), progress)
	require.NoError(t, err)

	require.Len(t, counts, 3)
	assert.Equal(t, []int{1, 2, 3}, counts)
}

func TestScanCancelledContext(t *testing.T) {
	root := buildTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(baseConfig(root), nil).Scan(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, result, "partial result is returned on cancellation")
}

func TestScanExtensionStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x.txt", 10)
	writeFile(t, root, "y.txt", 20)
	writeFile(t, root, "z.pdf", 5)
	writeFile(t, root, "noext", 1)

	result, err := New(baseConfig(root), nil).Scan(context.Background(), nil)
	require.NoError(t, err)

	require.NotEmpty(t, result.Summary.FileTypes)
	top := result.Summary.FileTypes[0]
	assert.Equal(t, ".txt", top.Extension)
	assert.Equal(t, 2, top.Count)
	assert.Equal(t, int64(30), top.TotalSizeBytes)

	extensions := make(map[string]bool)
	for _, ft := range result.Summary.FileTypes {
		extensions[ft.Extension] = true
	}
	assert.True(t, extensions["(no ext)"])
}
