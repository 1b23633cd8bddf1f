package render

import (
	"strings"
	"time"

	"gemini-chat/internal/chat"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	// bubbleChrome 是左右边框与内边距占用的列数："│ " + " │"。
	bubbleChrome = 4
	// bubbleMargin 是气泡与聊天区另一侧之间保留的列数。
	bubbleMargin = 6

	userPrefix      = "You: "
	timestampLayout = "15:04:05"
)

var (
	userBorderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	remoteBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	loadingBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15"))
	loadingTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true)
	prefixStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5")).Bold(true)
	plainRunStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5"))
	boldRunStyle       = plainRunStyle.Bold(true)

	spinnerFrames = spinner.MiniDot.Frames
)

// BubbleOptions 控制气泡标签。
type BubbleOptions struct {
	AssistantName string
}

func (o BubbleOptions) assistant() string {
	if strings.TrimSpace(o.AssistantName) == "" {
		return "Gemini"
	}
	return o.AssistantName
}

// bubble 是渲染前的几何描述。
type bubble struct {
	label       string
	prefix      string
	lines       [][]Span
	border      lipgloss.Style
	rightAlign  bool
	maxInterior int
}

// RenderMessage 将一条消息渲染为带边框的气泡。
// 用户消息右对齐，远端消息左对齐。
func RenderMessage(msg chat.Message, opts BubbleOptions, areaWidth int) []Line {
	b := bubble{}
	stamp := formatTimestamp(msg.Timestamp)
	if msg.IsUser() {
		b.label = "You " + stamp
		b.prefix = userPrefix
		b.border = userBorderStyle
		b.rightAlign = true
	} else {
		b.label = "🤖 " + opts.assistant() + " " + stamp
		b.border = remoteBorderStyle
	}
	prefixWidth := runewidth.StringWidth(b.prefix)
	b.maxInterior = maxInteriorWidth(areaWidth, prefixWidth)
	wrapWidth := b.maxInterior - prefixWidth
	for _, line := range Wrap(msg.Content, wrapWidth) {
		b.lines = append(b.lines, runsToSpans(ParseMarkup(line)))
	}
	return b.render(areaWidth)
}

// RenderLoading 渲染等待回复时的占位气泡，spinner 随 frame 轮换。
func RenderLoading(frame int, opts BubbleOptions, areaWidth int) []Line {
	text := SpinnerFrame(frame) + " Processing your message..."
	b := bubble{
		label:       opts.assistant() + " is thinking...",
		border:      loadingBorderStyle,
		maxInterior: maxInteriorWidth(areaWidth, 0),
	}
	for _, line := range Wrap(text, b.maxInterior) {
		b.lines = append(b.lines, []Span{{Text: line, Style: loadingTextStyle}})
	}
	return b.render(areaWidth)
}

// SpinnerFrame 返回 frame 对应的 spinner 字符。
func SpinnerFrame(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// maxInteriorWidth 至少容纳前缀加一个最小换行宽度，否则正文会比边框宽。
func maxInteriorWidth(areaWidth, prefixWidth int) int {
	return max(areaWidth-bubbleMargin-bubbleChrome, MinWrapWidth+prefixWidth)
}

func (b bubble) render(areaWidth int) []Line {
	prefixWidth := runewidth.StringWidth(b.prefix)
	contentWidth := 0
	for _, spans := range b.lines {
		contentWidth = max(contentWidth, prefixWidth+spansWidth(spans))
	}
	labelWidth := runewidth.StringWidth(b.label)
	interior := max(min(max(contentWidth, labelWidth+2), b.maxInterior), contentWidth)

	label := b.label
	if labelWidth+1 > interior {
		label = truncateToWidth(label, interior-1)
		labelWidth = runewidth.StringWidth(label)
	}

	lines := make([]Line, 0, len(b.lines)+2)
	top := "╭─ " + label + " " + strings.Repeat("─", max(interior-labelWidth-1, 0)) + "╮"
	lines = append(lines, Line{Spans: []Span{{Text: top, Style: b.border}}})
	for _, spans := range b.lines {
		body := make([]Span, 0, len(spans)+4)
		body = append(body, Span{Text: "│ ", Style: b.border})
		if b.prefix != "" {
			body = append(body, Span{Text: b.prefix, Style: prefixStyle})
		}
		body = append(body, spans...)
		pad := interior - prefixWidth - spansWidth(spans)
		if pad > 0 {
			body = append(body, Span{Text: strings.Repeat(" ", pad)})
		}
		body = append(body, Span{Text: " │", Style: b.border})
		lines = append(lines, Line{Spans: body})
	}
	bottom := "╰" + strings.Repeat("─", interior+2) + "╯"
	lines = append(lines, Line{Spans: []Span{{Text: bottom, Style: b.border}}})

	if b.rightAlign {
		lines = PadLeft(lines, areaWidth-(interior+bubbleChrome))
	}
	return lines
}

func runsToSpans(runs []StyledRun) []Span {
	spans := make([]Span, 0, len(runs))
	for _, run := range runs {
		style := plainRunStyle
		if run.Style == RunBold {
			style = boldRunStyle
		}
		spans = append(spans, Span{Text: run.Text, Style: style})
	}
	return spans
}

func spansWidth(spans []Span) int {
	w := 0
	for _, sp := range spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "??:??:??"
	}
	return ts.Format(timestampLayout)
}
