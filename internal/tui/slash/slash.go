package slash

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Command 表示内置斜杠命令的标识符。
type Command string

const (
	CommandCopy Command = "copy"
	CommandHelp Command = "help"
	CommandQuit Command = "quit"
)

// Item 代表一条可补全的命令。
type Item struct {
	Command     Command
	Description string
}

// Token 返回带前导斜杠的命令文本。
func (i Item) Token() string {
	return "/" + string(i.Command)
}

var builtins = []Item{
	{Command: CommandCopy, Description: "copy the latest reply to the clipboard"},
	{Command: CommandHelp, Description: "show key bindings"},
	{Command: CommandQuit, Description: "exit the chat"},
}

// Builtins 返回内置命令列表副本。
func Builtins() []Item {
	return append([]Item(nil), builtins...)
}

// Parse 识别整行输入是否为已知命令。
// 未知的 /xxx 不视为命令，由调用方按普通消息发送。
func Parse(input string) (Command, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return "", false
	}
	name := strings.ToLower(strings.TrimPrefix(trimmed, "/"))
	for _, item := range builtins {
		if string(item.Command) == name {
			return item.Command, true
		}
	}
	return "", false
}

// Complete 按模糊匹配返回候选命令，得分高者在前；同分按名称排序。
// input 需以 / 开头，否则返回 nil。
func Complete(input string) []Item {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.ContainsAny(trimmed, " \t") {
		return nil
	}
	query := strings.ToLower(strings.TrimPrefix(trimmed, "/"))
	if query == "" {
		return Builtins()
	}
	keys := make([]string, 0, len(builtins))
	for _, item := range builtins {
		keys = append(keys, string(item.Command))
	}
	results := fuzzy.Find(query, keys)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Str < results[j].Str
		}
		return results[i].Score > results[j].Score
	})
	out := make([]Item, 0, len(results))
	for _, res := range results {
		out = append(out, builtins[res.Index])
	}
	return out
}
