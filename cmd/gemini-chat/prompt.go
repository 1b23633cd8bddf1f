package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// promptAPIKey 以密码模式读取 API key。
func promptAPIKey(assistant string) (string, error) {
	var key string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your " + assistant + " API key").
				Description("The key is saved to your config directory with owner-only permissions.").
				EchoMode(huh.EchoModePassword).
				Validate(validateAPIKey).
				Value(&key),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func validateAPIKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}
