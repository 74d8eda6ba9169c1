package hasher

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/logger"
)

// ReadError 表示单个文件在打开或读取时失败
type ReadError struct {
	Op   string // "open" 或 "read"
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Hasher 以固定大小的分块流式计算文件摘要，内存占用与文件大小无关
type Hasher struct {
	fs         afero.Fs
	algo       Algorithm
	bufferSize int
}

// New 创建哈希计算器。bufferSize <= 0 时使用默认值
func New(fs afero.Fs, algo Algorithm, bufferSize int) *Hasher {
	if bufferSize <= 0 {
		bufferSize = internal.DefaultBufferSize
	}
	return &Hasher{
		fs:         fs,
		algo:       algo,
		bufferSize: bufferSize,
	}
}

// NewDefault 使用操作系统文件系统和 sha256
func NewDefault() *Hasher {
	algo, _ := Lookup(internal.DefaultAlgorithm)
	return New(afero.NewOsFs(), algo, internal.DefaultBufferSize)
}

func (h *Hasher) Algorithm() Algorithm {
	return h.algo
}

// Hash 计算文件内容的指纹（小写十六进制）
func (h *Hasher) Hash(path string) (string, error) {
	logger.Get().Trace().Msgf("计算文件哈希: %s", path)

	file, err := h.fs.Open(path)
	if err != nil {
		return "", &ReadError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	sum, err := h.HashReader(file)
	if err != nil {
		return "", &ReadError{Op: "read", Path: path, Err: err}
	}

	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %s", path, sum)
	return sum, nil
}

// HashReader 从 r 中分块读取直到 EOF 并返回十六进制摘要
func (h *Hasher) HashReader(r io.Reader) (string, error) {
	digest := h.algo.New()
	buf := make([]byte, h.bufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}
