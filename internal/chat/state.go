package chat

import (
	"slices"
	"time"
)

// AnimationPeriod 动画计数器的取模周期。
const AnimationPeriod = 100

// DefaultStatus 启动时的状态栏文本。
const DefaultStatus = "Ready to chat with Gemini! 🚀"

// State 是唯一的可变模型：消息日志、输入缓冲、加载标记、状态文本与动画计数。
// 只允许事件循环写入。
type State struct {
	messages       []Message
	input          []rune
	cursor         int
	scrollOffset   int
	loading        bool
	status         string
	animationFrame int

	now func() time.Time
}

// NewState 构造初始状态；now 为 nil 时使用 time.Now。
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{status: DefaultStatus, now: now}
}

// AppendMessage 追加一条消息并滚动到最新。
func (s *State) AppendMessage(content string, sender Sender) {
	s.messages = append(s.messages, Message{
		Content:   content,
		Sender:    sender,
		Timestamp: s.now(),
	})
	s.scrollOffset = len(s.messages) - 1
}

// Messages 返回日志副本。
func (s *State) Messages() []Message {
	return slices.Clone(s.messages)
}

// MessageCount 返回日志长度。
func (s *State) MessageCount() int {
	return len(s.messages)
}

// LastFrom 返回指定发送方的最新消息。
func (s *State) LastFrom(sender Sender) (Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Sender == sender {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// Input 返回输入缓冲文本。
func (s *State) Input() string {
	return string(s.input)
}

// Cursor 返回以字符为单位的光标位置。
func (s *State) Cursor() int {
	return s.cursor
}

// InsertChar 在光标处插入字符并右移光标。
func (s *State) InsertChar(r rune) {
	s.input = slices.Insert(s.input, s.cursor, r)
	s.cursor++
}

// InsertText 逐字符插入（粘贴）。
func (s *State) InsertText(text string) {
	for _, r := range text {
		s.InsertChar(r)
	}
}

// DeleteChar 删除光标前一个字符；光标在 0 时无操作。
func (s *State) DeleteChar() {
	if s.cursor == 0 {
		return
	}
	s.input = slices.Delete(s.input, s.cursor-1, s.cursor)
	s.cursor--
}

// DeleteForward 删除光标处字符；光标在末尾时无操作。
func (s *State) DeleteForward() {
	if s.cursor >= len(s.input) {
		return
	}
	s.input = slices.Delete(s.input, s.cursor, s.cursor+1)
}

func (s *State) MoveCursorLeft() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *State) MoveCursorRight() {
	if s.cursor < len(s.input) {
		s.cursor++
	}
}

func (s *State) MoveCursorHome() {
	s.cursor = 0
}

func (s *State) MoveCursorEnd() {
	s.cursor = len(s.input)
}

// ClearInput 清空输入与光标。
func (s *State) ClearInput() {
	s.input = s.input[:0]
	s.cursor = 0
}

// SetInput 替换输入内容，光标移到末尾。
func (s *State) SetInput(text string) {
	s.input = []rune(text)
	s.cursor = len(s.input)
}

// ScrollOffset 返回当前锚定的消息下标。
func (s *State) ScrollOffset() int {
	return s.scrollOffset
}

// ScrollUp 向较早的消息移动 n 条。
func (s *State) ScrollUp(n int) {
	s.setScroll(s.scrollOffset - n)
}

// ScrollDown 向较新的消息移动 n 条。
func (s *State) ScrollDown(n int) {
	s.setScroll(s.scrollOffset + n)
}

func (s *State) setScroll(offset int) {
	last := len(s.messages) - 1
	if offset > last {
		offset = last
	}
	if offset < 0 {
		offset = 0
	}
	s.scrollOffset = offset
}

// AtBottom 报告最新消息是否为滚动锚点；空日志视为在底部。
func (s *State) AtBottom() bool {
	return len(s.messages) == 0 || s.scrollOffset == len(s.messages)-1
}

func (s *State) Loading() bool {
	return s.loading
}

func (s *State) SetLoading(loading bool) {
	s.loading = loading
}

func (s *State) Status() string {
	return s.status
}

func (s *State) SetStatus(status string) {
	s.status = status
}

// AnimationFrame 返回 [0, AnimationPeriod) 内的动画计数。
func (s *State) AnimationFrame() int {
	return s.animationFrame
}

// TickAnimation 推进动画计数，按周期回绕。
func (s *State) TickAnimation() {
	s.animationFrame = (s.animationFrame + 1) % AnimationPeriod
}
