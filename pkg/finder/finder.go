package finder

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/config"
	"github.com/moyu-x/dupfind/pkg/hasher"
	"github.com/moyu-x/dupfind/pkg/index"
	"github.com/moyu-x/dupfind/pkg/logger"
	"github.com/moyu-x/dupfind/pkg/progress"
	"github.com/moyu-x/dupfind/pkg/scanner"
)

// Walker 列出单个目录，FileWalker 是默认实现
type Walker interface {
	Walk(dir string) (scanner.Listing, error)
	Identity(dir string) (string, bool)
}

// Finder 以广度优先的方式遍历目录树并把文件指纹汇总到索引中
type Finder struct {
	cfg         internal.RunConfig
	walker      Walker
	diagnostics io.Writer
	stats       internal.ScanStats
	visited     map[string]bool
}

// New 校验配置并创建 Finder。diagnostics 接收每个失败目录或文件的一行错误信息
func New(fs afero.Fs, rc internal.RunConfig, diagnostics io.Writer) (*Finder, error) {
	rc, err := config.Validate(rc)
	if err != nil {
		return nil, err
	}

	algo, err := hasher.Lookup(rc.Algorithm)
	if err != nil {
		return nil, err
	}
	detector, err := scanner.DetectorByName(rc.HiddenDetection)
	if err != nil {
		return nil, err
	}

	if !algo.Cryptographic {
		logger.Get().Warn().Msgf("%s 不是加密哈希，可能出现误报", algo.Name)
	}

	walker := scanner.NewFileWalker(fs, hasher.New(fs, algo, rc.BufferSize), scanner.Options{
		IncludeHidden:  rc.IncludeHidden,
		FollowSymlinks: rc.FollowSymlinks,
		Detector:       detector,
	})
	return NewWithWalker(walker, rc, diagnostics), nil
}

// NewWithWalker 使用自定义的 Walker，rc 需已校验
func NewWithWalker(walker Walker, rc internal.RunConfig, diagnostics io.Writer) *Finder {
	if diagnostics == nil {
		diagnostics = io.Discard
	}
	return &Finder{
		cfg:         rc,
		walker:      walker,
		diagnostics: diagnostics,
	}
}

// Run 遍历直到队列为空。目录和文件级别的错误只输出诊断信息，不会中断运行。
// 根目录总会被遍历一次；只有开启 Recurse 时才会把子目录加入队列
func (f *Finder) Run() *index.Index {
	idx := index.New()
	f.stats = internal.ScanStats{StartTime: time.Now()}
	tracker := progress.NewTracker(progress.DefaultInterval)
	if f.cfg.FollowSymlinks {
		f.visited = make(map[string]bool)
	}

	logger.Get().Info().
		Str("root", f.cfg.Path).
		Bool("recurse", f.cfg.Recurse).
		Bool("include_hidden", f.cfg.IncludeHidden).
		Str("algorithm", f.cfg.Algorithm).
		Msg("开始扫描")

	queue := newQueue()
	queue.push(f.cfg.Path)
	f.markVisited(f.cfg.Path)

	for queue.len() > 0 {
		dir := queue.pop()

		listing, err := f.walker.Walk(dir)
		if err != nil {
			f.stats.DirsFailed++
			f.reportDir(dir, err)
			continue
		}
		f.stats.DirsWalked++
		tracker.MarkDir(dir)

		for _, skipped := range listing.Skipped {
			f.stats.FilesSkipped++
			f.reportEntry(skipped)
		}

		for _, file := range listing.Files {
			idx.Record(file.Path, file.Fingerprint)
			f.stats.FilesHashed++
			tracker.MarkFile(file.Path)
		}

		if !f.cfg.Recurse {
			continue
		}
		for _, sub := range listing.Subdirs {
			if !f.markVisited(sub) {
				logger.Get().Debug().Msgf("目录已访问过，跳过（符号链接环路）: %s", sub)
				continue
			}
			queue.push(sub)
		}
	}

	f.stats.EndTime = time.Now()
	logger.Get().Info().
		Dur("duration", f.stats.EndTime.Sub(f.stats.StartTime)).
		Int("dirs_walked", f.stats.DirsWalked).
		Int("dirs_failed", f.stats.DirsFailed).
		Int("files_hashed", f.stats.FilesHashed).
		Int("files_skipped", f.stats.FilesSkipped).
		Int("unique", idx.Len()).
		Msg("扫描完成")

	return idx
}

// Stats 返回最近一次 Run 的统计信息
func (f *Finder) Stats() internal.ScanStats {
	return f.stats
}

// markVisited 仅在跟随符号链接时记录目录，返回 false 表示已访问过
func (f *Finder) markVisited(dir string) bool {
	if f.visited == nil {
		return true
	}
	key, ok := f.walker.Identity(dir)
	if !ok {
		key = filepath.Clean(dir)
	}
	if f.visited[key] {
		return false
	}
	f.visited[key] = true
	return true
}

func (f *Finder) reportDir(dir string, err error) {
	cause := unwrapWalk(err)
	logger.Get().Error().Err(cause).Str("kind", ErrorKind(err).String()).Msgf("遍历目录失败: %s", dir)
	fmt.Fprintf(f.diagnostics, "error walking directory: `%s` %v\n", dir, cause)
}

func (f *Finder) reportEntry(e scanner.EntryError) {
	logger.Get().Warn().Err(e.Err).Str("kind", ErrorKind(e).String()).Msgf("跳过文件: %s", e.Path)
	switch e.Op {
	case "hash":
		fmt.Fprintf(f.diagnostics, "error hashing file: `%s` %v\n", e.Path, unwrapRead(e.Err))
	default:
		fmt.Fprintf(f.diagnostics, "error reading entry: `%s` %v\n", e.Path, e.Err)
	}
}

// Run 是 New(...).Run() 的简写
func Run(fs afero.Fs, rc internal.RunConfig, diagnostics io.Writer) (*index.Index, internal.ScanStats, error) {
	f, err := New(fs, rc, diagnostics)
	if err != nil {
		return nil, internal.ScanStats{}, err
	}
	idx := f.Run()
	return idx, f.Stats(), nil
}
