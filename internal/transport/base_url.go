package transport

import (
	"net/url"
	"strings"
)

// openAIBaseURL 将用户填写的地址规整为以 /v1 结尾的根路径。
func openAIBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/chat/completions")
	path = strings.TrimRight(path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	for strings.Contains(path, "/v1/v1") {
		path = strings.ReplaceAll(path, "/v1/v1", "/v1")
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

// anthropicBaseURL 去掉末尾的 /v1，SDK 会自行拼接。
func anthropicBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if strings.HasSuffix(base, "/v1") {
		base = strings.TrimRight(strings.TrimSuffix(base, "/v1"), "/")
	}
	return base
}
