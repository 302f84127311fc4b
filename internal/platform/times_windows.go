//go:build windows

package platform

import (
	"os"
	"syscall"
	"time"
)

// statTimes reads creation and access times from the Win32 attribute data
func statTimes(info os.FileInfo) FileTimes {
	attr, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return FileTimes{}
	}
	return FileTimes{
		Created:  time.Unix(0, attr.CreationTime.Nanoseconds()),
		Accessed: time.Unix(0, attr.LastAccessTime.Nanoseconds()),
	}
}
