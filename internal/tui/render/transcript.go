package render

import "gemini-chat/internal/chat"

// TranscriptOptions 描述一次聊天区渲染所需的状态快照。
type TranscriptOptions struct {
	Bubble BubbleOptions
	// Anchor 是显示在底部的消息下标（即滚动位置）。
	Anchor  int
	Loading bool
	Frame   int
}

// RenderTranscript 渲染 messages[:Anchor+1] 的气泡，每个气泡后空一行。
// 锚定在最新消息且处于等待状态时，末尾追加加载气泡。
func RenderTranscript(msgs []chat.Message, opts TranscriptOptions, width int) []Line {
	end := len(msgs)
	if opts.Anchor >= 0 && opts.Anchor < len(msgs) {
		end = opts.Anchor + 1
	}
	buf := Buffer{}
	for _, msg := range msgs[:end] {
		buf.WriteLines(RenderMessage(msg, opts.Bubble, width)...)
		buf.WriteLine()
	}
	if opts.Loading && end == len(msgs) {
		buf.WriteLines(RenderLoading(opts.Frame, opts.Bubble, width)...)
		buf.WriteLine()
	}
	return buf.Lines
}

// Tail 返回最后 height 行。
func Tail(lines []Line, height int) []Line {
	if height <= 0 {
		return nil
	}
	if len(lines) > height {
		return lines[len(lines)-height:]
	}
	return lines
}
