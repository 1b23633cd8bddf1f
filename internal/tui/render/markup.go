package render

import "strings"

// RunStyle 是文本片段的样式标签。
type RunStyle int

const (
	RunPlain RunStyle = iota
	RunBold
)

// StyledRun 是同一样式的一段连续文本。
type StyledRun struct {
	Text  string
	Style RunStyle
}

const boldMarker = "**"

// ParseMarkup 解析单行中的 **bold** 标记。
// 未闭合的标记连同其后文本按原样输出为普通文本；不支持嵌套。
// 结果至少包含一个片段：空行返回一个空的普通片段。
func ParseMarkup(line string) []StyledRun {
	runs := []StyledRun{}
	var plain strings.Builder
	flushPlain := func() {
		if plain.Len() > 0 {
			runs = append(runs, StyledRun{Text: plain.String(), Style: RunPlain})
			plain.Reset()
		}
	}

	rest := line
	for rest != "" {
		open := strings.Index(rest, boldMarker)
		if open < 0 {
			plain.WriteString(rest)
			break
		}
		plain.WriteString(rest[:open])
		body := rest[open+len(boldMarker):]
		end := strings.Index(body, boldMarker)
		if end < 0 {
			plain.WriteString(rest[open:])
			break
		}
		flushPlain()
		if end > 0 {
			runs = append(runs, StyledRun{Text: body[:end], Style: RunBold})
		}
		rest = body[end+len(boldMarker):]
	}
	flushPlain()
	if len(runs) == 0 {
		runs = append(runs, StyledRun{Style: RunPlain})
	}
	return runs
}
