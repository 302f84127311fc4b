package output

import (
	"io"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
)

// scanTemplate shows a running counter with the entry being visited;
// the total is unknown while a scan is in flight
const scanTemplate = `{{string . "prefix"}} {{counters . }} {{string . "path"}}`

// ScanProgress shows a live counter while the scanner walks the tree
type ScanProgress struct {
	bar *pb.ProgressBar
}

// NewScanProgress creates and starts a scan counter writing to w
func NewScanProgress(w io.Writer) *ScanProgress {
	bar := pb.ProgressBarTemplate(scanTemplate).New(0)
	bar.SetWriter(w)
	bar.Set("prefix", "Scanning")
	bar.Start()
	return &ScanProgress{bar: bar}
}

// Update advances the counter to count and shows the current entry
func (p *ScanProgress) Update(count int, path string) {
	p.bar.SetCurrent(int64(count))
	p.bar.Set("path", filepath.Base(path))
}

// Finish stops the counter
func (p *ScanProgress) Finish() {
	p.bar.Finish()
}

// HashProgress shows a bounded bar while duplicate candidates are hashed
type HashProgress struct {
	bar *pb.ProgressBar
}

// NewHashProgress creates and starts a hashing bar for total files
func NewHashProgress(w io.Writer, total int) *HashProgress {
	bar := pb.Full.New(total)
	bar.SetWriter(w)
	bar.Start()
	return &HashProgress{bar: bar}
}

// Update advances the bar to done of total files hashed
func (p *HashProgress) Update(done, total int, path string) {
	if int64(total) != p.bar.Total() {
		p.bar.SetTotal(int64(total))
	}
	p.bar.SetCurrent(int64(done))
}

// Finish stops the bar
func (p *HashProgress) Finish() {
	p.bar.Finish()
}
