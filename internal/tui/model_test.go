package tui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"gemini-chat/internal/chat"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func newTestModel(t *testing.T, opts LoopOptions) *Model {
	t.Helper()
	l := NewLoop(opts)
	t.Cleanup(l.Close)
	return New(l)
}

func TestTranslateKey(t *testing.T) {
	m := newTestModel(t, LoopOptions{})
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want InputKind
		ok   bool
	}{
		{name: "enter", msg: tea.KeyMsg{Type: tea.KeyEnter}, want: InputEnter, ok: true},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}, want: InputEscape, ok: true},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, want: InputQuit, ok: true},
		{name: "backspace", msg: tea.KeyMsg{Type: tea.KeyBackspace}, want: InputBackspace, ok: true},
		{name: "delete", msg: tea.KeyMsg{Type: tea.KeyDelete}, want: InputDelete, ok: true},
		{name: "left", msg: tea.KeyMsg{Type: tea.KeyLeft}, want: InputLeft, ok: true},
		{name: "right", msg: tea.KeyMsg{Type: tea.KeyRight}, want: InputRight, ok: true},
		{name: "home", msg: tea.KeyMsg{Type: tea.KeyHome}, want: InputHome, ok: true},
		{name: "end", msg: tea.KeyMsg{Type: tea.KeyEnd}, want: InputEnd, ok: true},
		{name: "up", msg: tea.KeyMsg{Type: tea.KeyUp}, want: InputHistoryPrev, ok: true},
		{name: "down", msg: tea.KeyMsg{Type: tea.KeyDown}, want: InputHistoryNext, ok: true},
		{name: "pgup", msg: tea.KeyMsg{Type: tea.KeyPgUp}, want: InputPageUp, ok: true},
		{name: "pgdown", msg: tea.KeyMsg{Type: tea.KeyPgDown}, want: InputPageDown, ok: true},
		{name: "tab", msg: tea.KeyMsg{Type: tea.KeyTab}, want: InputComplete, ok: true},
		{name: "rune", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}}, want: InputChar, ok: true},
		{name: "space", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, want: InputChar, ok: true},
		{name: "paste", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted"), Paste: true}, want: InputPaste, ok: true},
		{name: "unbound", msg: tea.KeyMsg{Type: tea.KeyF5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.translateKey(tc.msg)
			if ok != tc.ok || got.Kind != tc.want {
				t.Fatalf("translateKey = %v,%v want %v,%v", got.Kind, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestTranslateKeyDemoAnyKeyQuits(t *testing.T) {
	m := newTestModel(t, LoopOptions{Demo: true})
	got, ok := m.translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !ok || got.Kind != InputQuit {
		t.Fatalf("demo key = %v,%v", got.Kind, ok)
	}
}

func TestUpdateTypesAndQuits(t *testing.T) {
	m := newTestModel(t, LoopOptions{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if got := m.loop.State().Input(); got != "hi" {
		t.Fatalf("input = %q", got)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestUpdateTickRearms(t *testing.T) {
	m := newTestModel(t, LoopOptions{TickPeriod: time.Millisecond})
	if m.Init() == nil {
		t.Fatalf("Init should schedule a tick")
	}
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatalf("tick should re-arm")
	}
	if _, ok := cmd().(tickMsg); !ok {
		t.Fatalf("re-armed command should produce a tickMsg")
	}
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(t, LoopOptions{Transport: newFakeTransport()})
	if m.View() != "" {
		t.Fatalf("view before window size should be empty")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	view := m.View()
	plain := stripANSI(view)
	for _, want := range []string{
		"GEMINI CHAT TUI",
		"Chat",
		"Your Message",
		"Type your message here...",
		"Status",
		"Ready to chat with Gemini! 🚀",
		"Enter send",
	} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view missing %q:\n%s", want, plain)
		}
	}
	lines := strings.Split(view, "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 80 {
			t.Fatalf("line %d width %d exceeds terminal", i, w)
		}
	}
}

func TestViewChatTitleShowsNewerCount(t *testing.T) {
	m := newTestModel(t, LoopOptions{Transport: newFakeTransport()})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	st := m.loop.State()
	for _, text := range []string{"a", "b", "c"} {
		st.AppendMessage(text, chat.SenderUser)
	}
	if plain := stripANSI(m.View()); strings.Contains(plain, "newer") {
		t.Fatalf("at bottom the title should be plain:\n%s", plain)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if plain := stripANSI(m.View()); !strings.Contains(plain, "Chat (2 newer, PgDn)") {
		t.Fatalf("scrolled title missing:\n%s", plain)
	}
}

func TestViewShowsMessagesAndLoading(t *testing.T) {
	m := newTestModel(t, LoopOptions{Transport: newFakeTransport()})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hello")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	plain := stripANSI(m.View())
	for _, want := range []string{"You: Hello", "Gemini is thinking...", "Processing your message...", "Sending message to Gemini..."} {
		if !strings.Contains(plain, want) {
			t.Fatalf("view missing %q:\n%s", want, plain)
		}
	}
}

func TestInputWindow(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		cursor     int
		width      int
		before, at string
		after      string
	}{
		{name: "fits", input: "hello", cursor: 5, width: 10, before: "hello", at: " "},
		{name: "scrolls to cursor", input: "abcdefghij", cursor: 10, width: 5, before: "ghij", at: " "},
		{name: "cursor at start", input: "abcdefghij", cursor: 0, width: 5, at: "a", after: "bcde"},
		{name: "cursor in middle", input: "abcdef", cursor: 2, width: 10, before: "ab", at: "c", after: "def"},
		{name: "wide runes", input: "你好世界", cursor: 4, width: 5, before: "世界", at: " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before, at, after := inputWindow([]rune(tc.input), tc.cursor, tc.width)
			if before != tc.before || at != tc.at || after != tc.after {
				t.Fatalf("inputWindow = %q,%q,%q want %q,%q,%q", before, at, after, tc.before, tc.at, tc.after)
			}
		})
	}
}

func TestRenderTitle(t *testing.T) {
	a := renderTitle(0, 40)
	if !strings.Contains(stripANSI(a), "GEMINI CHAT TUI") {
		t.Fatalf("title text missing")
	}
	if lipgloss.Height(a) != titleHeight {
		t.Fatalf("title height = %d", lipgloss.Height(a))
	}
}

func TestHelpLineSkipsDisabled(t *testing.T) {
	full := helpLine(defaultKeyMap())
	if !strings.Contains(full, "Enter send") || !strings.Contains(full, "Ctrl+C quit") {
		t.Fatalf("help line = %q", full)
	}
	demo := helpLine(demoKeyMap())
	if strings.Contains(demo, "Enter") || !strings.Contains(demo, "any key exit") {
		t.Fatalf("demo help line = %q", demo)
	}
}
