package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides 应用 -c key=value 覆盖，未知键与格式错误的条目被忽略。
// 切换 provider 时丢弃旧 provider 的 model 与默认助手名，除非同一批覆盖中也设置了它们。
func ApplyKVOverrides(s Settings, overrides []string) Settings {
	if len(overrides) == 0 {
		return s
	}
	prevProvider := s.normalized().Provider
	modelSet, assistantSet := false, false
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "provider":
			s.Provider = val
		case "model":
			s.Model = val
			modelSet = true
		case "base_url", "url":
			s.BaseURL = val
		case "assistant_name", "assistant":
			s.AssistantName = val
			assistantSet = true
		case "request_timeout_seconds", "timeout":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				s.RequestTimeoutSeconds = n
			}
		case "tick_millis", "tick":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				s.TickMillis = n
			}
		}
	}
	next := s.normalized()
	if next.Provider != prevProvider {
		if !modelSet {
			s.Model = ""
		}
		if !assistantSet && strings.TrimSpace(s.AssistantName) == DefaultAssistantName(prevProvider) {
			s.AssistantName = ""
		}
		next = s.normalized()
	}
	return next
}
