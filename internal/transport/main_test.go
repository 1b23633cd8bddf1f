package transport

import (
	"os"
	"testing"

	"gemini-chat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Configure("debug")
	os.Exit(m.Run())
}
