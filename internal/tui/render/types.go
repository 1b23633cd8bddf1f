package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Span 表示一段文本及其样式。
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Line 由多个 Span 组成。
type Line struct {
	Spans []Span
}

// Plain 返回去掉样式后的文本。
func (l Line) Plain() string {
	var sb strings.Builder
	for _, sp := range l.Spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}

// Width 返回行的显示宽度。
func (l Line) Width() int {
	w := 0
	for _, sp := range l.Spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

// Buffer 收集渲染结果，按行存储。
type Buffer struct {
	Lines []Line
}

// WriteLine 追加单行。
func (b *Buffer) WriteLine(spans ...Span) {
	if b == nil {
		return
	}
	b.Lines = append(b.Lines, Line{Spans: spans})
}

// WriteLines 追加多行。
func (b *Buffer) WriteLines(lines ...Line) {
	if b == nil {
		return
	}
	b.Lines = append(b.Lines, lines...)
}

// LinesToStrings 将样式化的行转换为终端字符串。
func LinesToStrings(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		for _, sp := range line.Spans {
			if sp.Text == "" {
				continue
			}
			sb.WriteString(sp.Style.Render(sp.Text))
		}
		out = append(out, sb.String())
	}
	return out
}

// PadLeft 在每行前插入 n 列空白。
func PadLeft(lines []Line, n int) []Line {
	if n <= 0 {
		return lines
	}
	pad := Span{Text: strings.Repeat(" ", n)}
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		spans := make([]Span, 0, len(l.Spans)+1)
		spans = append(spans, pad)
		spans = append(spans, l.Spans...)
		out = append(out, Line{Spans: spans})
	}
	return out
}
