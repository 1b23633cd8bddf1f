package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version 由 -ldflags "-X main.version=..." 注入。
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gemini-chat %s\n", version)
		},
	}
}
