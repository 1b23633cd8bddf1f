package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gemini-chat/internal/config"
	"gemini-chat/internal/history"
	"gemini-chat/internal/logger"
	"gemini-chat/internal/transport"
	"gemini-chat/internal/tui"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiKey      string
	apiKeySet   bool
	resetConfig bool
	demo        bool
	configDir   string
	provider    string
	model       string
	overrides   []string
	logFile     string
	logLevel    string
	noHistory   bool
}

// deps 汇总可替换的外部交互，测试时注入假实现。
type deps struct {
	promptKey    func(assistant string) (string, error)
	runTUI       func(tui.Options) error
	newTransport func(context.Context, transport.Options) (transport.Transport, error)
	out          io.Writer
}

func defaultDeps() deps {
	return deps{
		promptKey:    promptAPIKey,
		runTUI:       tui.Run,
		newTransport: transport.New,
		out:          os.Stdout,
	}
}

type app struct {
	opts      rootOptions
	deps      deps
	logCloser io.Closer
}

func newApp(d deps) *app {
	return &app{deps: d}
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gemini-chat",
		Short: "Chat with Gemini from the terminal",
		Long: `A terminal chat client for the Gemini API.

Messages are shown as chat bubbles; **bold** markup in replies is rendered.
The API key is stored in <config dir>/config.json (or read from GEMINI_API_KEY).
Client preferences live in <config dir>/settings.toml.

Examples:
  gemini-chat                          # start chatting
  gemini-chat --api-key AIza...        # save a new key and start
  gemini-chat --demo                   # show a canned conversation, no network
  gemini-chat -c provider=echo         # offline echo provider
  gemini-chat ping "hello"             # send one message and print the reply`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.setupLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.opts.apiKeySet = cmd.Flags().Changed("api-key")
			return a.runChat(cmd.Context())
		},
	}
	cmd.SetOut(a.deps.out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.configDir, "config-dir", "", "Configuration directory (default <UserConfigDir>/gemini-chat)")
	pf.StringVar(&a.opts.provider, "provider", "", "Provider: gemini, openai, anthropic or echo")
	pf.StringVar(&a.opts.model, "model", "", "Model name")
	pf.StringArrayVarP(&a.opts.overrides, "config", "c", nil, "Override a setting key=value (repeatable)")
	pf.StringVar(&a.opts.logFile, "log-file", "", "Log file path (default <config dir>/gemini-chat.log)")
	pf.StringVar(&a.opts.logLevel, "log-level", "info", "Log level")

	f := cmd.Flags()
	f.StringVar(&a.opts.apiKey, "api-key", "", "Save this API key and use it")
	f.BoolVar(&a.opts.resetConfig, "reset-config", false, "Discard the stored API key and prompt again")
	f.BoolVar(&a.opts.demo, "demo", false, "Show a canned conversation without contacting the API")
	f.BoolVar(&a.opts.noHistory, "no-history", false, "Do not read or write the prompt history file")

	cmd.AddCommand(newVersionCmd(), a.pingCommand())
	return cmd
}

// setupLogging 将日志写入文件；TUI 占用终端，失败时日志被丢弃。
func (a *app) setupLogging() {
	logger.Configure(a.opts.logLevel)
	path := strings.TrimSpace(a.opts.logFile)
	if path == "" {
		dir, err := a.configDir()
		if err != nil {
			return
		}
		path = filepath.Join(dir, logger.DefaultLogFile)
	}
	closer, err := logger.SetupFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", path, err)
		return
	}
	a.logCloser = closer
	log.WithField("version", version).Info("gemini-chat starting")
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

func (a *app) configDir() (string, error) {
	if dir := strings.TrimSpace(a.opts.configDir); dir != "" {
		return dir, nil
	}
	return config.DefaultDir()
}

func (a *app) runChat(ctx context.Context) error {
	if a.opts.demo {
		log.Info("starting demo mode")
		return a.deps.runTUI(tui.Options{Demo: true, TickPeriod: tui.DefaultTickPeriod})
	}
	settings, key, err := a.prepare()
	if err != nil {
		return err
	}
	t, err := a.deps.newTransport(ctx, transport.OptionsFromSettings(settings, key))
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}
	opts := tui.Options{
		Transport:     t,
		AssistantName: settings.AssistantName,
		TickPeriod:    settings.TickPeriod(),
	}
	if !a.opts.noHistory {
		dir, err := a.configDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		opts.History = history.New(dir)
	}
	return a.deps.runTUI(opts)
}

// prepare 解析设置与 API key。
func (a *app) prepare() (config.Settings, string, error) {
	dir, err := a.configDir()
	if err != nil {
		return config.Settings{}, "", fmt.Errorf("resolve config dir: %w", err)
	}
	settings, err := a.loadSettings(dir)
	if err != nil {
		return config.Settings{}, "", err
	}
	key, err := a.resolveAPIKey(dir, settings)
	if err != nil {
		return config.Settings{}, "", err
	}
	return settings, key, nil
}
