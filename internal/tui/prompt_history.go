package tui

import "strings"

// PromptStore 持久化已提交的输入，供下次启动时回溯。
type PromptStore interface {
	Load() ([]string, error)
	Append(text string) error
}

// promptHistory 负责输入框历史浏览状态（上下箭头）。
// cursor == len(entries) 表示当前在“最新输入”（非浏览历史）位置。
type promptHistory struct {
	entries []string
	cursor  int
	draft   string
	store   PromptStore
}

// load 从 store 载入已保存的输入；失败时只记录日志，从空历史开始。
func (h *promptHistory) load(store PromptStore) {
	h.store = store
	if store == nil {
		return
	}
	entries, err := store.Load()
	if err != nil {
		log.WithError(err).Warn("prompt history unavailable")
	}
	for _, text := range entries {
		h.push(text)
	}
	h.ResetBrowsing()
}

// Add 记录一次已提交的输入，连续重复的输入只保留一条。
func (h *promptHistory) Add(text string) {
	if h.push(text) && h.store != nil {
		if err := h.store.Append(text); err != nil {
			log.WithError(err).Warn("failed to save prompt history")
		}
	}
	h.ResetBrowsing()
}

func (h *promptHistory) push(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == text {
		return false
	}
	h.entries = append(h.entries, text)
	return true
}

func (h *promptHistory) Browsing() bool {
	return h.cursor < len(h.entries)
}

func (h *promptHistory) ResetBrowsing() {
	h.cursor = len(h.entries)
	h.draft = ""
}

// Prev 向更早的记录移动；首次进入浏览时暂存当前草稿。
func (h *promptHistory) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == len(h.entries) {
		h.draft = current
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next 向更新的记录移动；越过最新一条时恢复草稿。
func (h *promptHistory) Next() (string, bool) {
	if !h.Browsing() {
		return "", false
	}
	if h.cursor < len(h.entries)-1 {
		h.cursor++
		return h.entries[h.cursor], true
	}
	draft := h.draft
	h.ResetBrowsing()
	return draft, true
}
