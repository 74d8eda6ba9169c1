// Package index 把 (路径, 指纹) 流聚合为按指纹分组的路径列表。
package index

// Group 指纹相同的一组文件
type Group struct {
	Fingerprint string
	Paths       []string
}

// Index 指纹到路径列表的映射。每个列表保持插入顺序（即发现顺序）。
// 不是并发安全的，由调用方独占。
type Index struct {
	entries map[string][]string
	order   []string // 指纹首次出现的顺序
	files   int
}

func New() *Index {
	return &Index{
		entries: make(map[string][]string),
	}
}

// Record 把 path 追加到 fingerprint 对应的列表，列表不存在时创建
func (i *Index) Record(path, fingerprint string) {
	if _, ok := i.entries[fingerprint]; !ok {
		i.order = append(i.order, fingerprint)
	}
	i.entries[fingerprint] = append(i.entries[fingerprint], path)
	i.files++
}

// Len 返回不同指纹的数量
func (i *Index) Len() int {
	return len(i.entries)
}

// Files 返回记录的文件总数
func (i *Index) Files() int {
	return i.files
}

// Paths 返回指纹对应路径列表的副本
func (i *Index) Paths(fingerprint string) []string {
	paths, ok := i.entries[fingerprint]
	if !ok {
		return nil
	}
	return append([]string(nil), paths...)
}

// Groups 返回成员数大于 1 的分组，按指纹首次出现的顺序
func (i *Index) Groups() []Group {
	var groups []Group
	for _, fingerprint := range i.order {
		paths := i.entries[fingerprint]
		if len(paths) > 1 {
			groups = append(groups, Group{
				Fingerprint: fingerprint,
				Paths:       append([]string(nil), paths...),
			})
		}
	}
	return groups
}

// Finalize 返回累积结果的深拷贝，之后对 Index 的修改不会影响返回值
func (i *Index) Finalize() map[string][]string {
	out := make(map[string][]string, len(i.entries))
	for fingerprint, paths := range i.entries {
		out[fingerprint] = append([]string(nil), paths...)
	}
	return out
}
