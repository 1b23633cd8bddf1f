package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gemini-chat/internal/logger"
)

var log = logger.Named("config")

// AppName 配置目录名。
const AppName = "gemini-chat"

// APIKeyEnv 环境变量优先于配置文件中的 api_key。
const APIKeyEnv = "GEMINI_API_KEY"

// ErrEmptyAPIKey 表示没有可用的 API key。
var ErrEmptyAPIKey = errors.New("API key cannot be empty")

// Credentials 对应 config.json；Source 记录文件路径，不写入文件。
type Credentials struct {
	APIKey string `json:"api_key"`
	Source string `json:"-"`
}

// DefaultDir 返回 <UserConfigDir>/gemini-chat，失败时回退到 ~/.config/gemini-chat。
func DefaultDir() (string, error) {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("unable to determine config directory")
	}
	return filepath.Join(home, ".config", AppName), nil
}

// CredentialsPath 返回 dir 下的 config.json 路径。
func CredentialsPath(dir string) string {
	return filepath.Join(dir, "config.json")
}

// Load 读取凭据文件。文件不存在时返回空凭据；读取或解析失败返回错误。
func Load(path string) (Credentials, error) {
	creds := Credentials{Source: path}
	if strings.TrimSpace(path) == "" {
		return creds, errors.New("credentials path is empty")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Debug("credentials file not found")
			applyEnv(&creds)
			return creds, nil
		}
		return creds, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) != "" {
		if err := json.Unmarshal(content, &creds); err != nil {
			return creds, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnv(&creds)
	log.WithFields(logger.Fields{"path": path, "has_key": creds.APIKey != ""}).Debug("credentials loaded")
	return creds, nil
}

func applyEnv(creds *Credentials) {
	if env := strings.TrimSpace(os.Getenv(APIKeyEnv)); env != "" {
		creds.APIKey = env
	}
}

// Save 以 0600 权限写入凭据文件，必要时创建目录。
func Save(path string, creds Credentials) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("credentials path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// SetAPIKey 更新 key 并立即持久化到 creds.Source。
func (c *Credentials) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	c.APIKey = key
	if err := Save(c.Source, *c); err != nil {
		return err
	}
	log.WithField("path", c.Source).Info("api key saved")
	return nil
}
