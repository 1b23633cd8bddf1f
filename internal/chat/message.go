package chat

import "time"

// Sender 标识消息作者。
type Sender int

const (
	SenderUser Sender = iota
	SenderRemote
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Message 是对话日志中的一条记录，创建后不可修改。
type Message struct {
	Content   string
	Sender    Sender
	Timestamp time.Time
}

// IsUser 报告消息是否由本地用户输入。
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
