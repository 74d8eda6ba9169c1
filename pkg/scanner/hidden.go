package scanner

import (
	"fmt"
	"os"
	"strings"
)

// HiddenDetector 判断一个目录项是否被平台标记为隐藏
type HiddenDetector interface {
	IsHidden(path string, info os.FileInfo) bool
}

// DotPrefixDetector 按 Unix 约定，以 "." 开头的名称视为隐藏
type DotPrefixDetector struct{}

func (DotPrefixDetector) IsHidden(path string, info os.FileInfo) bool {
	name := ""
	if info != nil {
		name = info.Name()
	}
	if name == "" {
		name = baseName(path)
	}
	return len(name) > 1 && name[0] == '.' && name != ".."
}

// NeverHidden 不做任何隐藏判断
type NeverHidden struct{}

func (NeverHidden) IsHidden(string, os.FileInfo) bool { return false }

// DetectorByName 根据配置名称选择隐藏判断方式
// auto: 平台默认；attribute: 文件属性位；dotfile: 点号前缀；none: 不过滤
func DetectorByName(name string) (HiddenDetector, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return DefaultDetector(), nil
	case "attribute":
		return AttributeDetector{}, nil
	case "dotfile":
		return DotPrefixDetector{}, nil
	case "none":
		return NeverHidden{}, nil
	default:
		return nil, fmt.Errorf("unknown hidden detection mode: %q", name)
	}
}

// IsEligible 隐藏项只有在 includeHidden 为 true 时才参与遍历和哈希
func IsEligible(entry FileEntry, includeHidden bool) bool {
	return includeHidden || !entry.Hidden
}

func baseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
