package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gemini-chat/internal/logger"

	"github.com/pelletier/go-toml/v2"
)

// Provider 名称。
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderEcho      = "echo"
)

// Settings 描述 settings.toml 中的客户端偏好。
type Settings struct {
	Provider              string `toml:"provider"`
	Model                 string `toml:"model"`
	BaseURL               string `toml:"base_url"`
	AssistantName         string `toml:"assistant_name"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	TickMillis            int    `toml:"tick_millis"`
	Source                string `toml:"-"`
}

// DefaultSettings 返回与 Gemini 对话的默认设置。
func DefaultSettings() Settings {
	return Settings{
		Provider:              ProviderGemini,
		Model:                 "gemini-2.0-flash",
		AssistantName:         "Gemini",
		RequestTimeoutSeconds: 120,
		TickMillis:            100,
	}
}

// DefaultAssistantName 返回 provider 对应的默认助手名称。
func DefaultAssistantName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "ChatGPT"
	case ProviderAnthropic:
		return "Claude"
	case ProviderEcho:
		return "Echo"
	default:
		return "Gemini"
	}
}

// SettingsPath 返回 dir 下的 settings.toml 路径。
func SettingsPath(dir string) string {
	return filepath.Join(dir, "settings.toml")
}

// LoadSettings 读取 settings.toml；文件不存在时返回默认值。
// 未设置的字段按 provider 取默认值。
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()
	def.Source = path
	if strings.TrimSpace(path) == "" {
		return def, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return def, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	var s Settings
	if err := toml.Unmarshal(content, &s); err != nil {
		return def, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	s.Source = path
	s = s.normalized()
	log.WithFields(logger.Fields{"path": path, "provider": s.Provider, "model": s.Model}).Debug("settings loaded")
	return s, nil
}

// SaveSettings 将设置写回 TOML。
func SaveSettings(path string, s Settings) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("settings path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RequestTimeout 单次请求超时。
func (s Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// TickPeriod 动画 tick 间隔，同时是事件循环等待输入的上限。
func (s Settings) TickPeriod() time.Duration {
	return time.Duration(s.TickMillis) * time.Millisecond
}

func (s Settings) normalized() Settings {
	def := DefaultSettings()
	s.Provider = strings.ToLower(strings.TrimSpace(s.Provider))
	if s.Provider == "" {
		s.Provider = def.Provider
	}
	s.Model = strings.TrimSpace(s.Model)
	if s.Model == "" && s.Provider == ProviderGemini {
		s.Model = def.Model
	}
	s.AssistantName = strings.TrimSpace(s.AssistantName)
	if s.AssistantName == "" {
		s.AssistantName = DefaultAssistantName(s.Provider)
	}
	if s.RequestTimeoutSeconds <= 0 {
		s.RequestTimeoutSeconds = def.RequestTimeoutSeconds
	}
	if s.TickMillis <= 0 {
		s.TickMillis = def.TickMillis
	}
	return s
}
