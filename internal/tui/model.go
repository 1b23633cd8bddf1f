package tui

import (
	"time"

	"gemini-chat/internal/tui/render"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg 由 tea.Tick 触发，保证无输入时主循环也按周期唤醒。
type tickMsg time.Time

// Model 把 bubbletea 的消息转换为 Loop 输入；每次 Update 恰好调用一次 Step。
type Model struct {
	loop   *Loop
	keys   keyMap
	help   help.Model
	bubble render.BubbleOptions
	tick   time.Duration
	width  int
	height int
}

// New 创建绑定到 loop 的 Model。
func New(loop *Loop) *Model {
	keys := defaultKeyMap()
	if loop.Demo() {
		keys = demoKeyMap()
	}
	m := &Model{
		loop:   loop,
		keys:   keys,
		help:   newHelp(),
		bubble: render.BubbleOptions{AssistantName: loop.assistant},
		tick:   loop.tickPeriod,
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		in  *Input
		cmd tea.Cmd
	)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if input, ok := m.translateKey(msg); ok {
			in = &input
		}
	case tickMsg:
		cmd = m.tickCmd()
	}
	if m.loop.Step(in) {
		return m, tea.Quit
	}
	return m, cmd
}

// translateKey 将按键映射为 Loop 输入；未绑定的控制键返回 false。
func (m *Model) translateKey(msg tea.KeyMsg) (Input, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return Input{Kind: InputQuit}, true
	case m.loop.Demo():
		// 演示模式下任意键退出。
		return Input{Kind: InputQuit}, true
	case key.Matches(msg, k.Send):
		return Input{Kind: InputEnter}, true
	case key.Matches(msg, k.Cancel):
		return Input{Kind: InputEscape}, true
	case key.Matches(msg, k.Backspace):
		return Input{Kind: InputBackspace}, true
	case key.Matches(msg, k.Delete):
		return Input{Kind: InputDelete}, true
	case key.Matches(msg, k.Left):
		return Input{Kind: InputLeft}, true
	case key.Matches(msg, k.Right):
		return Input{Kind: InputRight}, true
	case key.Matches(msg, k.Home):
		return Input{Kind: InputHome}, true
	case key.Matches(msg, k.End):
		return Input{Kind: InputEnd}, true
	case key.Matches(msg, k.HistoryPrev):
		return Input{Kind: InputHistoryPrev}, true
	case key.Matches(msg, k.HistoryNext):
		return Input{Kind: InputHistoryNext}, true
	case key.Matches(msg, k.PageUp):
		return Input{Kind: InputPageUp}, true
	case key.Matches(msg, k.PageDown):
		return Input{Kind: InputPageDown}, true
	case key.Matches(msg, k.Complete):
		return Input{Kind: InputComplete}, true
	}
	switch msg.Type {
	case tea.KeyRunes:
		runes := append([]rune(nil), msg.Runes...)
		if msg.Paste {
			return Input{Kind: InputPaste, Runes: runes}, true
		}
		return Input{Kind: InputChar, Runes: runes}, true
	case tea.KeySpace:
		return Input{Kind: InputChar, Runes: []rune{' '}}, true
	}
	return Input{}, false
}
