package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge2048/internal/platform/tui"
	"github.com/vovakirdan/merge2048/internal/storage"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play 2048.

Each SSH connection gets its own game. Scores are stored per-server
(all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.merge2048/host_key

Examples:
  merge2048 ssh                           # Listen on :23234 with auto-generated key
  merge2048 ssh --ssh :2222               # Listen on port 2222
  merge2048 ssh --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides config)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
}

func runSSH(cmd *cobra.Command, _ []string) error {
	scfg := tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKeyPath,
		IdleTimeout: cfg.SSH.IdleTimeout,
	}
	if flagSSHAddr != "" {
		scfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		scfg.HostKeyPath = flagHostKey
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open scores database: %w", err)
	}
	defer store.Close()

	server, err := tui.NewSSHServer(scfg, store, nil)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting 2048 SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe(context.Background())
}
