// Package report 把最终的指纹索引渲染为文本或 JSON。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupfind/internal"
	"github.com/moyu-x/dupfind/pkg/logger"
)

const (
	groupHeader = "------- Multiple Entries Found -------"
	groupFooter = "--------------------------------------"
	noDupes     = "No duplicates found with hash comparison method."
)

type Group struct {
	Fingerprint string   `json:"fingerprint"`
	Kind        string   `json:"kind"`
	Paths       []string `json:"paths"`
}

type Report struct {
	UniqueFiles int     `json:"unique_files"`
	Groups      []Group `json:"duplicate_groups"`
}

// Build 从 fingerprint -> paths 映射中挑出重复分组。
// 组内保持原有（发现）顺序，组之间按首个路径的自然顺序排列
func Build(fs afero.Fs, entries map[string][]string) Report {
	rep := Report{UniqueFiles: len(entries), Groups: []Group{}}

	for fingerprint, paths := range entries {
		if len(paths) < 2 {
			continue
		}
		rep.Groups = append(rep.Groups, Group{
			Fingerprint: fingerprint,
			Kind:        detectKind(fs, paths[0]),
			Paths:       append([]string(nil), paths...),
		})
	}

	sort.Slice(rep.Groups, func(i, j int) bool {
		return natural.Less(rep.Groups[i].Paths[0], rep.Groups[j].Paths[0])
	})
	return rep
}

// detectKind 读取文件头部判断 MIME 类型，失败时返回 unknown
func detectKind(fs afero.Fs, path string) string {
	if fs == nil {
		return internal.UnknownKind
	}

	file, err := fs.Open(path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("读取文件头部失败: %s", path)
		return internal.UnknownKind
	}
	defer file.Close()

	head := make([]byte, internal.FileHeaderSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		logger.Get().Debug().Err(err).Msgf("读取文件头部失败: %s", path)
		return internal.UnknownKind
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return internal.UnknownKind
	}
	return kind.MIME.Value
}

type styles struct {
	summary lipgloss.Style
	header  lipgloss.Style
	index   lipgloss.Style
	kind    lipgloss.Style
}

func newStyles(w io.Writer, styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{summary: plain, header: plain, index: plain, kind: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		summary: r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		header:  r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		index:   r.NewStyle().Foreground(lipgloss.Color("241")),
		kind:    r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// WriteText 以文本形式输出报告。styled 为 true 时在终端上使用颜色
func WriteText(w io.Writer, rep Report, styled bool) error {
	st := newStyles(w, styled)
	ew := &errWriter{w: w}

	ew.printf("%s\n", st.summary.Render(fmt.Sprintf("Went through: %d unique files", rep.UniqueFiles)))

	for _, group := range rep.Groups {
		ew.printf("%s\n", st.header.Render(groupHeader))
		if group.Kind != "" && group.Kind != internal.UnknownKind {
			ew.printf("%s\n", st.kind.Render("  type: "+group.Kind))
		}
		for i, path := range group.Paths {
			ew.printf("%s -> `%s`\n", st.index.Render(fmt.Sprintf("%5d", i+1)), path)
		}
		ew.printf("%s\n", st.header.Render(groupFooter))
	}

	if len(rep.Groups) == 0 {
		ew.printf("%s\n", noDupes)
	}
	return ew.err
}

// WriteJSON 以 JSON 形式输出报告
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// errWriter 记录第一次写入错误，之后的写入直接跳过
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
