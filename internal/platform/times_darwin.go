//go:build darwin

package platform

import (
	"os"
	"syscall"
	"time"
)

// statTimes reads birth and access times from the underlying stat
func statTimes(info os.FileInfo) FileTimes {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return FileTimes{}
	}
	return FileTimes{
		Created:  time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec),
		Accessed: time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec),
	}
}
