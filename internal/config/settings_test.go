package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Provider != ProviderGemini || s.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.TickPeriod() != 100*time.Millisecond {
		t.Fatalf("TickPeriod = %v", s.TickPeriod())
	}
	if s.Source != path {
		t.Fatalf("Source = %q", s.Source)
	}
}

func TestLoadSettings_FromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(`
provider = "OpenAI"
model = "gpt-4o-mini"
base_url = "https://example.test/v1"
request_timeout_seconds = 30
`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Provider != ProviderOpenAI {
		t.Fatalf("Provider = %q", s.Provider)
	}
	if s.Model != "gpt-4o-mini" || s.BaseURL != "https://example.test/v1" {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.RequestTimeout() != 30*time.Second {
		t.Fatalf("RequestTimeout = %v", s.RequestTimeout())
	}
	if s.TickMillis != 100 || s.AssistantName != "ChatGPT" {
		t.Fatalf("unset fields should take provider defaults: %+v", s)
	}
}

func TestLoadSettings_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("provider = "), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	want := DefaultSettings()
	want.Model = "gemini-1.5-pro"
	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got.Model != "gemini-1.5-pro" {
		t.Fatalf("Model = %q", got.Model)
	}
}

func TestApplyKVOverrides(t *testing.T) {
	got := ApplyKVOverrides(DefaultSettings(), []string{
		"model=gemini-exp",
		"timeout=15",
		"tick=0",
		"provider=echo",
		"garbage",
		"unknown=1",
	})
	if got.Model != "gemini-exp" {
		t.Fatalf("Model = %q", got.Model)
	}
	if got.RequestTimeoutSeconds != 15 {
		t.Fatalf("RequestTimeoutSeconds = %d", got.RequestTimeoutSeconds)
	}
	if got.TickMillis != 100 {
		t.Fatalf("non-positive tick should be ignored, got %d", got.TickMillis)
	}
	if got.Provider != ProviderEcho {
		t.Fatalf("Provider = %q", got.Provider)
	}
}

func TestApplyKVOverrides_ProviderSwitchResetsDefaults(t *testing.T) {
	got := ApplyKVOverrides(DefaultSettings(), []string{"provider=anthropic"})
	if got.Model != "" {
		t.Fatalf("gemini model should be dropped, got %q", got.Model)
	}
	if got.AssistantName != "Claude" {
		t.Fatalf("AssistantName = %q", got.AssistantName)
	}

	custom := DefaultSettings()
	custom.AssistantName = "Buddy"
	got = ApplyKVOverrides(custom, []string{"provider=openai", "model=gpt-test"})
	if got.Model != "gpt-test" || got.AssistantName != "Buddy" {
		t.Fatalf("explicit model and custom name should survive: %+v", got)
	}

	got = ApplyKVOverrides(DefaultSettings(), []string{"provider=gemini"})
	if got.Model != "gemini-2.0-flash" || got.AssistantName != "Gemini" {
		t.Fatalf("same provider should keep settings: %+v", got)
	}
}
