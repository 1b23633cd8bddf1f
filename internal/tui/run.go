package tui

import (
	"time"

	"gemini-chat/internal/transport"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Options 配置一次 TUI 会话。
type Options struct {
	Transport     transport.Transport
	AssistantName string
	TickPeriod    time.Duration
	Demo          bool
	History       PromptStore
}

// Run 封装 Bubble Tea 入口，在备用屏幕中运行直到用户退出。
// 退出时取消未完成的请求；终端由 Bubble Tea 在所有退出路径上恢复。
func Run(opts Options) error {
	loop := NewLoop(LoopOptions{
		Transport:     opts.Transport,
		AssistantName: opts.AssistantName,
		TickPeriod:    opts.TickPeriod,
		Copy:          clipboard.WriteAll,
		Demo:          opts.Demo,
		History:       opts.History,
	})
	defer loop.Close()

	log.WithField("demo", opts.Demo).Info("tui starting")
	program := tea.NewProgram(New(loop), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.WithError(err).Error("tui exited with error")
		return err
	}
	log.Info("tui exited")
	return nil
}
