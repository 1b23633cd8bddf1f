package tui

import (
	"fmt"
	"strings"

	"gemini-chat/internal/chat"
	"gemini-chat/internal/tui/render"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	appTitle         = "GEMINI CHAT TUI"
	inputPlaceholder = "Type your message here... (Press Enter to send, Ctrl+C to quit)"

	// 标题、输入、状态各占 3 行，提示 1 行。
	titleHeight  = 3
	inputHeight  = 3
	statusHeight = 3
	hintHeight   = 1
	minChatRows  = 1
)

var (
	rainbow = []lipgloss.Color{
		lipgloss.Color("#EF4444"),
		lipgloss.Color("#FACC15"),
		lipgloss.Color("#4ADE80"),
		lipgloss.Color("#22D3EE"),
		lipgloss.Color("#60A5FA"),
		lipgloss.Color("#E879F9"),
	}
	chatBorderColor  = lipgloss.Color("#F5F5F5")
	inputBorderColor = lipgloss.Color("#E879F9")
	loadingColor     = lipgloss.Color("#FACC15")
	idleColor        = lipgloss.Color("#4ADE80")

	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	inputTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5"))
	cursorStyle      = lipgloss.NewStyle().Reverse(true)
)

// View 渲染整屏：标题、聊天区、输入框、状态栏与按键提示。
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	st := m.loop.State()
	frame := st.AnimationFrame()

	chatRows := max(m.height-titleHeight-inputHeight-statusHeight-hintHeight-2, minChatRows)
	inner := max(m.width-2, 1)

	transcript := render.RenderTranscript(st.Messages(), render.TranscriptOptions{
		Bubble:  m.bubble,
		Anchor:  st.ScrollOffset(),
		Loading: st.Loading(),
		Frame:   frame,
	}, inner)
	pane := render.LinesToStrings(render.Tail(transcript, chatRows))
	for len(pane) < chatRows {
		pane = append([]string{""}, pane...)
	}

	statusColor := idleColor
	if st.Loading() {
		statusColor = loadingColor
	}
	statusText := lipgloss.NewStyle().Foreground(statusColor).Bold(true).Render(truncate(st.Status(), inner))

	sections := []string{
		renderTitle(frame, m.width),
		box(chatTitle(st), pane, m.width, chatBorderColor),
		box("Your Message", []string{renderInput([]rune(st.Input()), st.Cursor(), inner)}, m.width, inputBorderColor),
		box("Status", []string{statusText}, m.width, statusColor),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// chatTitle 在翻看旧消息时提示下方还有多少条更新的消息。
func chatTitle(st *chat.State) string {
	if st.AtBottom() {
		return "Chat"
	}
	return fmt.Sprintf("Chat (%d newer, PgDn)", st.MessageCount()-1-st.ScrollOffset())
}

// renderTitle 渲染逐字变色的标题，颜色随动画帧轮换。
func renderTitle(frame, width int) string {
	var sb strings.Builder
	for i, r := range appTitle {
		color := rainbow[(i+frame/5)%len(rainbow)]
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(string(r)))
	}
	border := rainbow[frame%len(rainbow)]
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 1)).
		Render(sb.String())
}

// box 渲染带标题的圆角边框面板，body 已按内部宽度排版。
func box(title string, body []string, width int, color lipgloss.Color) string {
	inner := max(width-2, 1)
	border := lipgloss.NewStyle().Foreground(color)
	label := truncate(" "+title+" ", max(inner-1, 0))
	fill := max(inner-1-runewidth.StringWidth(label), 0)
	top := border.Render("╭─" + label + strings.Repeat("─", fill) + "╮")

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderForeground(color).
		Width(inner).
		Render(strings.Join(body, "\n"))
	return top + "\n" + content
}

// renderInput 渲染单行输入框；水平滚动保证光标可见。
func renderInput(input []rune, cursor, width int) string {
	if len(input) == 0 {
		return cursorStyle.Render(" ") + placeholderStyle.Render(truncate(inputPlaceholder, width-1))
	}
	before, at, after := inputWindow(input, cursor, width)
	return inputTextStyle.Render(before) + cursorStyle.Render(at) + inputTextStyle.Render(after)
}

// inputWindow 返回光标前、光标处、光标后的可见文本，总显示宽度不超过 width。
// 光标位于末尾时 at 为一个空格。
func inputWindow(input []rune, cursor, width int) (before, at, after string) {
	width = max(width, 1)
	cursor = min(max(cursor, 0), len(input))
	at = " "
	if cursor < len(input) {
		at = string(input[cursor])
	}
	atWidth := max(runewidth.StringWidth(at), 1)

	start, used := cursor, atWidth
	for start > 0 {
		w := runewidth.RuneWidth(input[start-1])
		if used+w > width {
			break
		}
		used += w
		start--
	}
	before = string(input[start:cursor])

	if cursor < len(input) {
		end := cursor + 1
		for end < len(input) {
			w := runewidth.RuneWidth(input[end])
			if used+w > width {
				break
			}
			used += w
			end++
		}
		after = string(input[cursor+1 : end])
	}
	return before, at, after
}

// helpLine 返回全部已启用按键提示的纯文本，用于 /help。
func helpLine(keys keyMap) string {
	var parts []string
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
	}
	return strings.Join(parts, " · ")
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " · "
	return h
}

func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}
