package main

import (
	"os"

	"gemini-chat/internal/logger"
)

var log = logger.Named("cli")

func main() {
	a := newApp(defaultDeps())
	err := a.command().Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}
