package platform

import (
	"os"
	"time"
)

// FileTimes holds the platform-dependent timestamps of a file
type FileTimes struct {
	// Created is the birth time where the platform records one,
	// otherwise the closest available substitute
	Created time.Time

	// Accessed is the last access time
	Accessed time.Time

	// Modified is the last modification time
	Modified time.Time
}

// Times extracts creation, access and modification times from a FileInfo
func Times(info os.FileInfo) FileTimes {
	ft := statTimes(info)
	ft.Modified = info.ModTime()
	if ft.Created.IsZero() {
		ft.Created = ft.Modified
	}
	if ft.Accessed.IsZero() {
		ft.Accessed = ft.Modified
	}
	return ft
}
