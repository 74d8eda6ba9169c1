//go:build !windows

package scanner

import "os"

// AttributeDetector 在没有隐藏属性位的平台上总是返回 false
type AttributeDetector struct{}

func (AttributeDetector) IsHidden(string, os.FileInfo) bool { return false }

// DefaultDetector 非 Windows 平台使用点号前缀约定
func DefaultDetector() HiddenDetector {
	return DotPrefixDetector{}
}
