package finder

import (
	"errors"
	"io/fs"

	"github.com/moyu-x/dupfind/pkg/config"
	"github.com/moyu-x/dupfind/pkg/hasher"
	"github.com/moyu-x/dupfind/pkg/scanner"
)

// Kind 错误分类
type Kind int

const (
	IOFailure Kind = iota
	PathNotFound
	PermissionDenied
	FileReadFailure
	InvalidConfiguration
)

func (k Kind) String() string {
	switch k {
	case PathNotFound:
		return "PathNotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case FileReadFailure:
		return "FileReadFailure"
	case InvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return "IOFailure"
	}
}

// ErrorKind 对遍历过程中的错误分类。文件哈希失败统一归为 FileReadFailure
func ErrorKind(err error) Kind {
	var readErr *hasher.ReadError
	switch {
	case errors.Is(err, config.ErrInvalidConfig):
		return InvalidConfiguration
	case errors.As(err, &readErr):
		return FileReadFailure
	case errors.Is(err, fs.ErrNotExist):
		return PathNotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	default:
		return IOFailure
	}
}

func unwrapWalk(err error) error {
	var walkErr *scanner.WalkError
	if errors.As(err, &walkErr) {
		return walkErr.Err
	}
	return err
}

func unwrapRead(err error) error {
	var readErr *hasher.ReadError
	if errors.As(err, &readErr) {
		return readErr.Err
	}
	return err
}
