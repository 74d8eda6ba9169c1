package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/hasher"
	"github.com/moyu-x/dupfind/pkg/logger"
)

// FileEntry 遍历时发现的单个目录项
type FileEntry struct {
	Path   string
	Kind   internal.EntryKind
	Hidden bool
}

// HashedFile 已计算指纹的文件
type HashedFile struct {
	Path        string
	Fingerprint string
}

// EntryError 单个目录项的软失败，不影响同目录其他项
type EntryError struct {
	Op   string // "stat" 或 "hash"
	Path string
	Err  error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// WalkError 目录本身无法打开或读取
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Listing 单个目录的遍历结果，顺序与目录项名称顺序一致
type Listing struct {
	Files   []HashedFile
	Subdirs []string
	Skipped []EntryError
}

type Options struct {
	IncludeHidden  bool
	FollowSymlinks bool
	Detector       HiddenDetector
}

// FileWalker 只列出一个目录的直接子项，递归由调用方通过队列完成
type FileWalker struct {
	fs     afero.Fs
	hasher *hasher.Hasher
	opts   Options
}

func NewFileWalker(fs afero.Fs, h *hasher.Hasher, opts Options) *FileWalker {
	if opts.Detector == nil {
		opts.Detector = DefaultDetector()
	}
	return &FileWalker{
		fs:     fs,
		hasher: h,
		opts:   opts,
	}
}

// Walk 列出 dir 的直接子项：子目录收集到 Subdirs，普通文件哈希后收集到 Files
func (w *FileWalker) Walk(dir string) (Listing, error) {
	logger.Get().Debug().Msgf("扫描目录: %s", dir)

	names, err := w.readDirNames(dir)
	if err != nil {
		return Listing{}, &WalkError{Path: dir, Err: err}
	}

	var listing Listing
	for _, name := range names {
		path := filepath.Join(dir, name)

		entry, err := w.entry(path)
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("读取目录项失败，跳过: %s", path)
			listing.Skipped = append(listing.Skipped, EntryError{Op: "stat", Path: path, Err: err})
			continue
		}

		if !IsEligible(entry, w.opts.IncludeHidden) {
			logger.Get().Trace().Msgf("跳过隐藏项: %s", path)
			continue
		}

		switch entry.Kind {
		case internal.KindDir:
			listing.Subdirs = append(listing.Subdirs, path)
		case internal.KindFile:
			fingerprint, err := w.hasher.Hash(path)
			if err != nil {
				logger.Get().Debug().Err(err).Msgf("计算哈希失败，跳过: %s", path)
				listing.Skipped = append(listing.Skipped, EntryError{Op: "hash", Path: path, Err: err})
				continue
			}
			listing.Files = append(listing.Files, HashedFile{Path: path, Fingerprint: fingerprint})
		default:
			logger.Get().Debug().Str("kind", entry.Kind.String()).Msgf("跳过非普通文件: %s", path)
		}
	}

	return listing, nil
}

// Identity 返回目录的唯一标识，用于跟随符号链接时检测环路
func (w *FileWalker) Identity(dir string) (string, bool) {
	info, err := w.fs.Stat(dir)
	if err != nil {
		return "", false
	}
	return identityOf(info)
}

func (w *FileWalker) readDirNames(dir string) ([]string, error) {
	f, err := w.fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// entry 读取目录项元数据。隐藏判断基于链接本身，类型在跟随链接时取目标的类型
func (w *FileWalker) entry(path string) (FileEntry, error) {
	info, err := w.lstat(path)
	if err != nil {
		return FileEntry{}, err
	}

	entry := FileEntry{
		Path:   path,
		Kind:   kindOf(info.Mode()),
		Hidden: w.opts.Detector.IsHidden(path, info),
	}

	if entry.Kind == internal.KindSymlink && w.opts.FollowSymlinks {
		target, err := w.fs.Stat(path)
		if err != nil {
			return FileEntry{}, err
		}
		entry.Kind = kindOf(target.Mode())
	}

	return entry, nil
}

func (w *FileWalker) lstat(path string) (os.FileInfo, error) {
	if l, ok := w.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return w.fs.Stat(path)
}

func kindOf(mode os.FileMode) internal.EntryKind {
	switch {
	case mode.IsDir():
		return internal.KindDir
	case mode.IsRegular():
		return internal.KindFile
	case mode&os.ModeSymlink != 0:
		return internal.KindSymlink
	default:
		return internal.KindOther
	}
}
