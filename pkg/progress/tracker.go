package progress

import (
	"sync"
	"time"

	"github.com/moyu-x/dupfind/pkg/logger"
)

// DefaultInterval 每处理多少个文件输出一次进度
const DefaultInterval = 100

// Tracker 记录扫描进度，每 interval 个文件输出一次日志。
// 只保存在内存中，运行结束后即丢弃
type Tracker struct {
	mu       sync.Mutex
	interval int
	files    int
	dirs     int
	started  time.Time
}

func NewTracker(interval int) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{interval: interval, started: time.Now()}
}

// MarkDir 记录一个已遍历的目录
func (t *Tracker) MarkDir(dir string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirs++
	logger.Get().Trace().Msgf("目录遍历完成: %s", dir)
}

// MarkFile 记录一个已计算指纹的文件，返回是否触发了进度输出
func (t *Tracker) MarkFile(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.files++
	if t.files%t.interval != 0 {
		return false
	}

	logger.Get().Info().
		Int("files", t.files).
		Int("dirs", t.dirs).
		Dur("elapsed", time.Since(t.started)).
		Msgf("已处理 %d 个文件，最近: %s", t.files, path)
	return true
}

// Files 获取已处理文件数
func (t *Tracker) Files() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.files
}

// Dirs 获取已遍历目录数
func (t *Tracker) Dirs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirs
}
