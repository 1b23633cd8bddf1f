package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"gemini-chat/internal/chat"
	"gemini-chat/internal/logger"
	"gemini-chat/internal/transport"
	"gemini-chat/internal/tui/slash"

	"github.com/google/uuid"
)

var log = logger.Named("loop")

const (
	// DefaultTickPeriod 是动画推进与空闲唤醒的间隔。
	DefaultTickPeriod = 100 * time.Millisecond

	eventBuffer = 16
	scrollStep  = 1

	statusReceived  = "Response received! 🎉"
	statusFailed    = "Error occurred 😞"
	statusCancelled = "Message cancelled"
	statusNoReply   = "Nothing to copy yet"
	statusCopied    = "Copied last reply to clipboard 📋"
	statusDemo      = "Demo Mode - Press any key to continue, Ctrl+C to exit"
	errorPrefix     = "❌ Error: "
)

// InputKind 标识一次按键输入的语义。
type InputKind int

const (
	InputNone InputKind = iota
	InputChar
	InputPaste
	InputBackspace
	InputDelete
	InputLeft
	InputRight
	InputHome
	InputEnd
	InputEnter
	InputEscape
	InputHistoryPrev
	InputHistoryNext
	InputPageUp
	InputPageDown
	InputComplete
	InputQuit
)

// Input 是传给 Step 的单次输入；Runes 仅对 InputChar/InputPaste 有意义。
type Input struct {
	Kind  InputKind
	Runes []rune
}

// EventKind 区分异步发送的结果。
type EventKind int

const (
	EventReply EventKind = iota + 1
	EventError
)

// Event 是发送 goroutine 回传给主循环的结果。
type Event struct {
	Kind      EventKind
	Text      string
	RequestID string
}

// LoopOptions 配置 Loop。零值字段使用默认值。
type LoopOptions struct {
	Transport     transport.Transport
	AssistantName string
	TickPeriod    time.Duration
	Now           func() time.Time
	Copy          func(string) error
	Demo          bool
	// History 为 nil 时输入历史只保存在内存中；演示模式不读写。
	History PromptStore
}

// Loop 是唯一修改 chat.State 的执行者。
// Step 必须在同一个 goroutine 中调用；网络请求在独立 goroutine 中执行，
// 结果经 events 通道回传，由下一次 Step 取出。
type Loop struct {
	state     *chat.State
	transport transport.Transport
	events    chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	now        func() time.Time
	tickPeriod time.Duration
	lastTick   time.Time

	history   promptHistory
	copy      func(string) error
	assistant string
	demo      bool
	// current 是尚未取消、正在等待结果的请求 id。
	current string
}

// NewLoop 创建主循环及其拥有的 chat.State。
func NewLoop(opts LoopOptions) *Loop {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tick := opts.TickPeriod
	if tick <= 0 {
		tick = DefaultTickPeriod
	}
	assistant := strings.TrimSpace(opts.AssistantName)
	if assistant == "" {
		assistant = "Gemini"
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		state:      chat.NewState(now),
		transport:  opts.Transport,
		events:     make(chan Event, eventBuffer),
		ctx:        ctx,
		cancel:     cancel,
		now:        now,
		tickPeriod: tick,
		lastTick:   now(),
		copy:       opts.Copy,
		assistant:  assistant,
		demo:       opts.Demo,
	}
	if l.demo {
		seedDemo(l.state)
		l.state.SetStatus(statusDemo)
	} else {
		l.history.load(opts.History)
		if assistant != "Gemini" {
			l.state.SetStatus("Ready to chat with " + assistant + "! 🚀")
		}
	}
	return l
}

// State 返回只读视图使用的状态；调用方不得在 Step 之外修改。
func (l *Loop) State() *chat.State {
	return l.state
}

// Demo 报告是否处于演示模式。
func (l *Loop) Demo() bool {
	return l.demo
}

// Step 依次执行：处理输入、非阻塞取出全部异步结果、按时间推进动画。
// 返回 true 表示应退出。
func (l *Loop) Step(in *Input) bool {
	quit := false
	if in != nil && in.Kind != InputNone {
		quit = l.apply(*in)
	}
	l.drain()
	l.advance()
	return quit
}

// Close 取消未完成的请求并等待发送 goroutine 退出。
func (l *Loop) Close() {
	l.cancel()
	l.wg.Wait()
}

func (l *Loop) apply(in Input) bool {
	if l.demo {
		return true
	}
	st := l.state
	switch in.Kind {
	case InputQuit:
		return true
	case InputChar:
		for _, r := range in.Runes {
			st.InsertChar(r)
		}
		l.history.ResetBrowsing()
	case InputPaste:
		st.InsertText(flattenPaste(string(in.Runes)))
		l.history.ResetBrowsing()
	case InputBackspace:
		st.DeleteChar()
	case InputDelete:
		st.DeleteForward()
	case InputLeft:
		st.MoveCursorLeft()
	case InputRight:
		st.MoveCursorRight()
	case InputHome:
		st.MoveCursorHome()
	case InputEnd:
		st.MoveCursorEnd()
	case InputHistoryPrev:
		if text, ok := l.history.Prev(st.Input()); ok {
			st.SetInput(text)
		}
	case InputHistoryNext:
		if text, ok := l.history.Next(); ok {
			st.SetInput(text)
		}
	case InputPageUp:
		st.ScrollUp(scrollStep)
	case InputPageDown:
		st.ScrollDown(scrollStep)
	case InputComplete:
		l.complete()
	case InputEscape:
		l.cancelPending()
	case InputEnter:
		return l.submit()
	}
	return false
}

func (l *Loop) submit() bool {
	st := l.state
	text := st.Input()
	if strings.TrimSpace(text) == "" {
		return false
	}
	if cmd, ok := slash.Parse(text); ok {
		l.history.Add(text)
		st.ClearInput()
		return l.runCommand(cmd)
	}
	if st.Loading() {
		log.Debug("send rejected while awaiting reply")
		return false
	}
	l.history.Add(text)
	st.AppendMessage(text, chat.SenderUser)
	st.ClearInput()
	st.SetLoading(true)
	st.SetStatus("Sending message to " + l.assistant + "...")
	l.spawnSend(text)
	return false
}

func (l *Loop) cancelPending() {
	if !l.state.Loading() {
		return
	}
	log.WithField("request_id", l.current).Info("request cancelled by user")
	l.current = ""
	l.state.SetLoading(false)
	l.state.SetStatus(statusCancelled)
}

func (l *Loop) complete() {
	items := slash.Complete(l.state.Input())
	switch len(items) {
	case 0:
		return
	case 1:
		l.state.SetInput(items[0].Token())
	default:
		tokens := make([]string, 0, len(items))
		for _, item := range items {
			tokens = append(tokens, item.Token())
		}
		l.state.SetInput(items[0].Token())
		l.state.SetStatus("Commands: " + strings.Join(tokens, " "))
	}
}

func (l *Loop) runCommand(cmd slash.Command) bool {
	st := l.state
	switch cmd {
	case slash.CommandQuit:
		return true
	case slash.CommandHelp:
		st.SetStatus(helpLine(defaultKeyMap()) + " · /copy · /quit")
	case slash.CommandCopy:
		reply, ok := st.LastFrom(chat.SenderRemote)
		if !ok {
			st.SetStatus(statusNoReply)
			return false
		}
		if l.copy == nil {
			st.SetStatus("Copy failed: clipboard unavailable")
			return false
		}
		if err := l.copy(reply.Content); err != nil {
			log.WithError(err).Warn("clipboard copy failed")
			st.SetStatus("Copy failed: " + err.Error())
			return false
		}
		st.SetStatus(statusCopied)
	}
	return false
}

// spawnSend 在独立 goroutine 中发送；goroutine 只持有文本、transport 与通道的副本。
func (l *Loop) spawnSend(text string) {
	id := uuid.NewString()
	l.current = id
	if l.transport == nil {
		l.events <- Event{Kind: EventError, Text: "no transport configured", RequestID: id}
		return
	}
	entry := log.WithFields(logger.Fields{"request_id": id, "chars": len([]rune(text))})
	entry.Info("request started")

	l.wg.Add(1)
	go func(ctx context.Context, t transport.Transport, events chan<- Event, wg *sync.WaitGroup) {
		defer wg.Done()
		start := time.Now()
		reply, err := t.Send(ctx, text)
		ev := Event{Kind: EventReply, Text: reply, RequestID: id}
		if err != nil {
			ev = Event{Kind: EventError, Text: err.Error(), RequestID: id}
			entry.WithError(err).WithField("duration", time.Since(start)).Warn("request failed")
		} else {
			entry.WithField("duration", time.Since(start)).Info("request finished")
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}(l.ctx, l.transport, l.events, &l.wg)
}

func (l *Loop) drain() {
	for {
		select {
		case ev := <-l.events:
			l.applyEvent(ev)
		default:
			return
		}
	}
}

// applyEvent 追加回复或错误消息。被取消的请求结果同样追加；
// 仅当它是当前请求或没有其他请求在等待时才结束等待状态。
func (l *Loop) applyEvent(ev Event) {
	st := l.state
	current := ev.RequestID == l.current
	if !current {
		log.WithField("request_id", ev.RequestID).Info("applying stale result")
	}
	switch ev.Kind {
	case EventReply:
		st.AppendMessage(ev.Text, chat.SenderRemote)
	case EventError:
		st.AppendMessage(errorPrefix+ev.Text, chat.SenderRemote)
	default:
		return
	}
	if !current && l.current != "" {
		return
	}
	l.current = ""
	st.SetLoading(false)
	if ev.Kind == EventReply {
		st.SetStatus(statusReceived)
	} else {
		st.SetStatus(statusFailed)
	}
}

func (l *Loop) advance() {
	now := l.now()
	if now.Sub(l.lastTick) >= l.tickPeriod {
		l.state.TickAnimation()
		l.lastTick = now
	}
}

// flattenPaste 将粘贴内容中的换行折叠为空格，输入框只有一行。
func flattenPaste(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(text)
}
