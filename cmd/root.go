package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	idleTimeoutSecs int
	outputFormat    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "teller",
	Short: "An interactive terminal banking demo",
	Long: `Teller is a self-contained banking demo that runs entirely in your
terminal. It seeds a small roster of demo accounts into an in-memory store
and lets you log in, browse movements and summaries, transfer money between
accounts, request loans, and close accounts. An idle countdown logs you
out after five minutes of inactivity.

Nothing is persisted: every run starts from the same seed data.`,
	Example: `  # Start the interactive session
  teller run

  # Start with a shorter idle timeout (in seconds)
  teller run --idle-timeout 60

  # Show the demo account roster
  teller accounts

  # Roster as JSON
  teller accounts --output json`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().IntVar(&idleTimeoutSecs, "idle-timeout", 300, "Seconds of inactivity before automatic logout")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")
}
