//go:build linux

package platform

import (
	"os"
	"syscall"
	"time"
)

// statTimes reads access and change times from the underlying stat.
// Linux has no birth time in the stat struct, so ctime stands in.
func statTimes(info os.FileInfo) FileTimes {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return FileTimes{}
	}
	return FileTimes{
		Created:  time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
		Accessed: time.Unix(stat.Atim.Sec, stat.Atim.Nsec),
	}
}
