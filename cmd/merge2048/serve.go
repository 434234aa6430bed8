package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/bot"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	flagAddr string
	flagPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Discord interactions",
	Long: `Start the HTTP endpoint Discord posts interactions to.

The bot keeps no game state: every board lives in the buttons of the
message that shows it. Requests are checked against the application's
public key, taken from bot.public_key or DISCORD_PUBLIC_KEY.

Finished games are recorded in the scores database.

Examples:
  merge2048 serve
  merge2048 serve --addr 0.0.0.0:8080 --path /interactions
  PORT=8080 merge2048 serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagPath, "path", "", "Interactions route (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagAddr != "" {
		cfg.Bot.Address = flagAddr
	}
	if flagPath != "" {
		cfg.Bot.Path = flagPath
	}
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "merge2048-bot",
	})

	verifier, err := bot.NewVerifier(cfg.Bot.PublicKey)
	if err != nil {
		return err
	}

	opts := []bot.Option{bot.WithCommand(cfg.Bot.Command)}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("scores will not be recorded", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, bot.WithResultSaver(store))
	}

	server := bot.NewServer(bot.ServerConfig{
		Address:         cfg.Bot.Address,
		Path:            cfg.Bot.Path,
		ShutdownTimeout: cfg.Bot.ShutdownTimeout,
	}, bot.NewHandler(opts...), verifier, logger)

	fmt.Fprintf(cmd.OutOrStdout(), "Interactions endpoint: http://%s%s\n", server.Addr(), cfg.Bot.Path)

	return server.ListenAndServe(context.Background())
}
