//go:build !linux && !darwin && !windows

package platform

import (
	"os"
)

// statTimes falls back to zero values; Times substitutes ModTime
func statTimes(info os.FileInfo) FileTimes {
	return FileTimes{}
}
