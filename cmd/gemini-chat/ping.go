package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gemini-chat/internal/transport"

	"github.com/spf13/cobra"
)

// pingCommand 发送单条消息并打印回复，用于检查 key 与网络。
func (a *app) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping [message]",
		Short: "Send one message and print the reply",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := "ping"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				message = args[0]
			}
			return a.runPing(cmd.Context(), message, cmd)
		},
	}
}

func (a *app) runPing(ctx context.Context, message string, cmd *cobra.Command) error {
	settings, key, err := a.prepare()
	if err != nil {
		return err
	}
	t, err := a.deps.newTransport(ctx, transport.OptionsFromSettings(settings, key))
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}
	start := time.Now()
	reply, err := t.Send(ctx, message)
	if err != nil {
		return err
	}
	log.WithField("duration", time.Since(start)).Info("ping ok")
	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
