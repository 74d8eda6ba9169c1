package internal

import "time"

// 目录项类型
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindSymlink
	KindOther
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// 扫描统计
type ScanStats struct {
	DirsWalked   int
	DirsFailed   int
	FilesHashed  int
	FilesSkipped int
	StartTime    time.Time
	EndTime      time.Time
}

// 运行配置，启动时解析一次，之后只读
type RunConfig struct {
	Path            string
	Recurse         bool
	IncludeHidden   bool
	FollowSymlinks  bool
	HiddenDetection string
	Algorithm       string
	BufferSize      int
}
