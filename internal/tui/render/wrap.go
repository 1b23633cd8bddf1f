package render

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// MinWrapWidth 换行宽度下限，避免零宽循环。
const MinWrapWidth = 10

// Wrap 按空白切词并贪心填充，使每行显示宽度不超过 width。
// 超宽单词按字符显示宽度切块；单个字符本身超宽时单独成行。
// 空输入返回一个空行。
func Wrap(text string, width int) []string {
	if width < MinWrapWidth {
		width = MinWrapWidth
	}
	lines := []string{}
	current := ""
	currentWidth := 0
	for _, word := range strings.Fields(text) {
		wordWidth := runewidth.StringWidth(word)
		if wordWidth > width {
			if current != "" {
				lines = append(lines, current)
				current, currentWidth = "", 0
			}
			lines = append(lines, breakLongWord(word, width)...)
			continue
		}
		switch {
		case current == "":
			current, currentWidth = word, wordWidth
		case currentWidth+1+wordWidth <= width:
			current += " " + word
			currentWidth += 1 + wordWidth
		default:
			lines = append(lines, current)
			current, currentWidth = word, wordWidth
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func breakLongWord(word string, width int) []string {
	out := []string{}
	for word != "" {
		end, w := 0, 0
		for end < len(word) {
			r, size := utf8.DecodeRuneInString(word[end:])
			rw := runewidth.RuneWidth(r)
			if w+rw > width {
				break
			}
			w += rw
			end += size
		}
		if end == 0 {
			_, size := utf8.DecodeRuneInString(word)
			end = size
		}
		out = append(out, word[:end])
		word = word[end:]
	}
	return out
}

// truncateToWidth 截断到不超过 width 的显示宽度。
func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := 0
	var sb strings.Builder
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			break
		}
		sb.WriteRune(r)
		w += rw
	}
	return sb.String()
}
