package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gemini-chat/internal/logger"
)

var log = logger.Named("history")

// FileName 输入历史文件名，位于配置目录下。
const FileName = "history.jsonl"

// DefaultLimit 启动时最多载入的历史条数。
const DefaultLimit = 500

// Entry 是 history.jsonl 中的一行。
type Entry struct {
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Store 以 JSON Lines 追加保存已提交的输入，只用于上下箭头回溯。
type Store struct {
	Path  string
	Limit int

	now func() time.Time
}

// New 返回 dir 下 history.jsonl 的 Store。
func New(dir string) *Store {
	return &Store{Path: filepath.Join(dir, FileName), Limit: DefaultLimit, now: time.Now}
}

// Append 追加一条记录；空白输入被忽略。文件以 0600 创建。
func (s *Store) Append(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	data, err := json.Marshal(Entry{Text: text, TS: now()})
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history %s: %w", s.Path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write history %s: %w", s.Path, err)
	}
	return nil
}

// Load 按时间顺序返回最近 Limit 条输入。文件不存在时返回空；损坏的行被跳过。
func (s *Store) Load() ([]string, error) {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("history path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []string
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil || strings.TrimSpace(e.Text) == "" {
			skipped++
			continue
		}
		out = append(out, e.Text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("malformed history lines ignored")
	}
	if s.Limit > 0 && len(out) > s.Limit {
		out = out[len(out)-s.Limit:]
	}
	return out, nil
}

func (s *Store) ensureDir() error {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return errors.New("history path is empty")
	}
	return os.MkdirAll(filepath.Dir(s.Path), 0o700)
}
