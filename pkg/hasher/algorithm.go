package hasher

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/sha3"
)

// Algorithm 描述一种可选的摘要算法
type Algorithm struct {
	Name string
	// Size 为摘要字节数，十六进制指纹长度为 2*Size
	Size int
	// Cryptographic 为 false 时碰撞概率不可忽略，只适合快速预览
	Cryptographic bool
	New           func() hash.Hash
}

var algorithms = map[string]Algorithm{
	"sha256": {Name: "sha256", Size: sha256.Size, Cryptographic: true, New: sha256.New},
	"sha1":   {Name: "sha1", Size: sha1.Size, Cryptographic: true, New: sha1.New},
	"sha512": {Name: "sha512", Size: sha512.Size, Cryptographic: true, New: sha512.New},
	"sha3-256": {Name: "sha3-256", Size: 32, Cryptographic: true, New: func() hash.Hash {
		return sha3.New256()
	}},
	"xxhash": {Name: "xxhash", Size: 8, Cryptographic: false, New: func() hash.Hash {
		return xxhash.New()
	}},
}

// Lookup 按名称查找算法，名称不区分大小写
func Lookup(name string) (Algorithm, error) {
	algo, ok := algorithms[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Algorithm{}, fmt.Errorf("unsupported hash algorithm: %q", name)
	}
	return algo, nil
}

// Names 返回所有支持的算法名称（已排序）
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
