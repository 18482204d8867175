package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelpilot-org/reelpilot/pkg/config"
	"github.com/reelpilot-org/reelpilot/pkg/llm"
	"github.com/reelpilot-org/reelpilot/pkg/llm/factory"
	"github.com/reelpilot-org/reelpilot/pkg/store"
)

// app holds the resources shared by subcommands. Built lazily: listing
// videos must not require a provider API key.
type app struct {
	configPath string
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "reelpilot",
		Short:         "Plan and narrate mobile app tutorial videos with an LLM agent",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cfg.LogLevel)
			slog.SetDefault(a.log)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to configuration file")

	cmd.AddCommand(newIdeasCmd(a))
	cmd.AddCommand(newPlanCmd(a))
	cmd.AddCommand(newScriptCmd(a))
	cmd.AddCommand(newVideosCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newLLMClient builds the chat client for the active provider.
func (a *app) newLLMClient(ctx context.Context) (*llm.Client, error) {
	providerID, opts, err := a.cfg.GetActiveProvider()
	if err != nil {
		return nil, err
	}

	provider, err := factory.New(ctx, providerID, opts)
	if err != nil {
		return nil, err
	}

	a.log.Info("provider selected", "provider", providerID, "model", opts.Model)

	return llm.NewClient(provider, llm.Options{
		Model:          opts.Model,
		RequestTimeout: time.Duration(opts.Timeout) * time.Second,
		Temperature:    opts.Temperature,
		MaxTokens:      opts.MaxTokens,
	}, a.log), nil
}

// openStore opens the on-disk video library.
func (a *app) openStore(ctx context.Context) (*store.FSStore, error) {
	st := store.NewFSStore(a.cfg.Store.Dir)
	if err := st.Open(ctx); err != nil {
		return nil, err
	}
	return st, nil
}
