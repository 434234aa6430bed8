// merge2048 plays 2048 in the terminal, over SSH, and as a Discord bot.
//
// Usage:
//
//	merge2048 play           - Play in this terminal
//	merge2048 demo           - Print a scripted game as tables
//	merge2048 serve          - Serve Discord interactions over HTTP
//	merge2048 ssh            - Start SSH server for remote play
//	merge2048 scores         - Show high scores
//
// Global flags:
//
//	--config <path> - Path to a YAML config file
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.merge2048/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string

	// cfg is resolved before any subcommand runs.
	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge2048",
	Short: "2048 in your terminal, over SSH and on Discord",
	Long: `merge2048 is the sliding tile game 2048.

Available commands:
  play     - Play in this terminal
  demo     - Print a scripted game as tables
  serve    - Serve Discord interactions over HTTP
  ssh      - Start SSH server for remote play
  scores   - View high scores

Settings come from --config, ~/.merge2048/config.yaml or
./configs/merge2048.yaml, then from a .env file and the environment
(DISCORD_PUBLIC_KEY, PORT, MERGE2048_DB), then from flags.

Examples:
  merge2048 play
  merge2048 demo --seed 7
  merge2048 serve
  merge2048 ssh --ssh :2222
  merge2048 scores`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(scoresCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	loaded.ApplyEnv()

	if flagDBPath != "" {
		loaded.Storage.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("seed") {
		loaded.Play.Seed = flagSeed
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	return nil
}
