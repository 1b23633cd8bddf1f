package tui

import "gemini-chat/internal/chat"

// demoConversation 是 --demo 模式展示的固定对话。
var demoConversation = []struct {
	sender chat.Sender
	text   string
}{
	{chat.SenderUser, "Hello Gemini! How are you today?"},
	{chat.SenderRemote, "Hello! I'm doing great, thank you for asking! I'm here to help you with any questions or tasks you might have. The weather has been lovely lately, and I've been enjoying our conversations. How has your day been going so far?"},
	{chat.SenderUser, "That's wonderful to hear! I've been working on a TUI chat application in Go."},
	{chat.SenderRemote, "That sounds like an **exciting** project! Terminal user interfaces can be really elegant and efficient. Go has great libraries for building TUIs, like **Bubble Tea** and **Lip Gloss**. Are you enjoying the development process?"},
	{chat.SenderUser, "Yes, very much! The bubble design looks much better now."},
}

func seedDemo(st *chat.State) {
	for _, m := range demoConversation {
		st.AppendMessage(m.text, m.sender)
	}
}
