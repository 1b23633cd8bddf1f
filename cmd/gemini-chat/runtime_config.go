package main

import (
	"errors"
	"fmt"
	"os"

	"gemini-chat/internal/config"
	"gemini-chat/internal/logger"
)

// loadSettings 读取 settings.toml（缺失时写入默认值），再依次应用
// --provider/--model 与 -c 覆盖。
func (a *app) loadSettings(dir string) (config.Settings, error) {
	path := config.SettingsPath(dir)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.SaveSettings(path, config.DefaultSettings()); err != nil {
			log.WithError(err).Warn("failed to write default settings")
		}
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return config.Settings{}, err
	}
	settings = config.ApplyKVOverrides(settings, a.settingOverrides())
	log.WithFields(logger.Fields{
		"provider": settings.Provider,
		"model":    settings.Model,
	}).Info("settings resolved")
	return settings, nil
}

func (a *app) settingOverrides() []string {
	var overrides []string
	if a.opts.provider != "" {
		overrides = append(overrides, "provider="+a.opts.provider)
	}
	if a.opts.model != "" {
		overrides = append(overrides, "model="+a.opts.model)
	}
	return append(overrides, a.opts.overrides...)
}

// resolveAPIKey 按优先级取得 key：--api-key（保存）> 已存储/环境变量 > 交互输入（保存）。
// --reset-config 忽略已存储的 key；这两个参数下凭据文件损坏也不报错。echo provider 不需要 key。
func (a *app) resolveAPIKey(dir string, settings config.Settings) (string, error) {
	if settings.Provider == config.ProviderEcho {
		return "", nil
	}
	path := config.CredentialsPath(dir)
	replacing := a.opts.resetConfig || a.opts.apiKeySet || a.opts.apiKey != ""
	creds, err := config.Load(path)
	if err != nil {
		if !replacing {
			return "", err
		}
		// 旧 key 即将被丢弃或覆盖，损坏的文件直接重写。
		log.WithError(err).Warn("unreadable credentials replaced")
		creds = config.Credentials{Source: path}
	}
	if a.opts.resetConfig {
		log.Info("stored api key discarded")
		creds.APIKey = ""
	}
	if a.opts.apiKeySet || a.opts.apiKey != "" {
		if err := creds.SetAPIKey(a.opts.apiKey); err != nil {
			return "", err
		}
		return creds.APIKey, nil
	}
	if creds.APIKey != "" {
		return creds.APIKey, nil
	}
	key, err := a.deps.promptKey(settings.AssistantName)
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	if err := creds.SetAPIKey(key); err != nil {
		return "", err
	}
	return creds.APIKey, nil
}
