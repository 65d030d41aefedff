package cmd

import (
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/monietree/teller/bank"
	"github.com/monietree/teller/db"
	"github.com/monietree/teller/tui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive banking session",
	Long: `Start the terminal UI over a freshly seeded in-memory account store.

Log in with one of the demo accounts (see 'teller accounts' for the
roster; usernames are the owner's initials). While logged in you can
transfer money, request a loan, toggle the movement ordering, and close
the account. Staying idle past the timeout logs you out.`,
	Example: `  teller run
  teller run --idle-timeout 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open account store: %w", err)
		}
		defer store.Close()

		if err := store.Seed(); err != nil {
			return fmt.Errorf("failed to seed accounts: %w", err)
		}

		cfg := bank.DefaultConfig()
		cfg.IdleTimeout = time.Duration(idleTimeoutSecs) * time.Second

		svc := bank.NewService(store, cfg)
		if err := tui.Run(svc, cfg); err != nil {
			return fmt.Errorf("terminal session failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
