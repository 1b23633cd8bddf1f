package logger

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger/LogEntry/Fields 暴露底层类型，避免调用方直接依赖 logrus 包。
type Logger = logrus.Logger
type LogEntry = logrus.Entry
type Fields = logrus.Fields

// DefaultLogFile 日志文件名，位于配置目录下。
const DefaultLogFile = "gemini-chat.log"

var rootLogger = logrus.StandardLogger()

// Configure 设置全局日志格式、级别与 caller 输出。
// TUI 占用 stdout，未调用 SetupFile 前日志被丢弃。
func Configure(level string) {
	root().SetReportCaller(true)
	root().SetFormatter(PlainFormatter{})
	root().SetOutput(io.Discard)
	root().SetLevel(ParseLevel(level))
}

// ParseLevel 解析日志级别，未知值回退到 info。
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// SetupFile 将全局日志输出重定向到指定路径。
// 返回底层文件的 closer 以便调用方清理。
func SetupFile(logPath string) (io.Closer, error) {
	if strings.TrimSpace(logPath) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	root().SetOutput(f)
	return f, nil
}

// SetRoot 覆盖全局 logger，传入 nil 时重置为标准 logger。
func SetRoot(l *Logger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	rootLogger = l
}

// Named 为指定组件创建入口，统一 component 字段。
func Named(component string) *LogEntry {
	entry := logrus.NewEntry(root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

// PlainFormatter 输出单行日志：caller [ts] [LEVEL] [component] message k=v...
// 时间统一为 UTC，字段按键名排序。
type PlainFormatter struct{}

// 这些键已经作为前缀输出，不再出现在字段列表里。
var headerKeys = map[string]bool{"component": true, "caller": true}

// Format 实现 logrus Formatter。
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	if caller := callerOf(entry); caller != "" {
		buf.WriteString(caller)
		buf.WriteByte(' ')
	}
	fmt.Fprintf(&buf, "[%s] [%s] ",
		entry.Time.UTC().Format(time.RFC3339Nano), strings.ToUpper(entry.Level.String()))
	if component, _ := entry.Data["component"].(string); component != "" {
		fmt.Fprintf(&buf, "[%s] ", component)
	}
	buf.WriteString(entry.Message)
	for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
		if headerKeys[k] {
			continue
		}
		fmt.Fprintf(&buf, " %s=%v", k, entry.Data[k])
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// callerOf 优先使用 logrus 记录的调用位置，其次是显式的 caller 字段。
func callerOf(entry *logrus.Entry) string {
	if entry.HasCaller() && entry.Caller != nil {
		return shortenFilePath(entry.Caller.File) + ":" + strconv.Itoa(entry.Caller.Line)
	}
	caller, _ := entry.Data["caller"].(string)
	return caller
}

// shortenFilePath 保留从 internal/ 或 cmd/ 开始的模块内路径。
func shortenFilePath(file string) string {
	segments := strings.Split(filepath.ToSlash(file), "/")
	for i, seg := range segments[:max(len(segments)-1, 0)] {
		if seg == "internal" || seg == "cmd" {
			return strings.Join(segments[i:], "/")
		}
	}
	return path.Base(filepath.ToSlash(file))
}
