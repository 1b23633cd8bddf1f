package transport

import "context"

// Echo 离线回显，用于无网络环境与测试。
type Echo struct {
	Prefix string
}

func (e Echo) Send(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prefix := e.Prefix
	if prefix == "" {
		prefix = "Echo: "
	}
	return prefix + message, nil
}
