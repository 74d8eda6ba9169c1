//go:build !windows

package scanner

import (
	"fmt"
	"os"
	"syscall"
)

// identityOf 用设备号和 inode 唯一标识一个目录
func identityOf(info os.FileInfo) (string, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%d:%d", uint64(stat.Dev), uint64(stat.Ino)), true
}
