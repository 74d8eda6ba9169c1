//go:build windows

package scanner

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// AttributeDetector 读取 FILE_ATTRIBUTE_HIDDEN 属性位
type AttributeDetector struct{}

func (AttributeDetector) IsHidden(path string, info os.FileInfo) bool {
	if info != nil {
		if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
			return data.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
		}
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}

// DefaultDetector Windows 上使用文件属性
func DefaultDetector() HiddenDetector {
	return AttributeDetector{}
}
