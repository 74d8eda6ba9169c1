//go:build windows

package scanner

import "os"

// identityOf Windows 上不支持 inode，调用方回退到路径比较
func identityOf(info os.FileInfo) (string, bool) {
	return "", false
}
