package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/monietree/teller/db"
	"github.com/monietree/teller/format"
	"github.com/monietree/teller/model"
)

// accountsCmd represents the accounts command
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Show the demo account roster",
	Long: `Show the accounts seeded into every session: owner, login username,
currency, movement count and current balance. PINs are not shown; this
is a demo, go read the seed data if you must.`,
	Example: `  teller accounts
  teller accounts --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open account store: %w", err)
		}
		defer store.Close()

		if err := store.Seed(); err != nil {
			return fmt.Errorf("failed to seed accounts: %w", err)
		}

		accounts, err := store.ListAccounts()
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		return displayAccounts(accounts, outputFormat)
	},
}

// displayAccounts formats and displays the roster
func displayAccounts(accounts []*model.Account, outputFormat string) error {
	switch outputFormat {
	case "json":
		return displayAccountsJSON(accounts)
	case "table":
		return displayAccountsTable(accounts)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func displayAccountsTable(accounts []*model.Account) error {
	fmt.Printf("Found %d account(s):\n", len(accounts))
	for i, acc := range accounts {
		fmt.Printf("%d. Account: %s\n", i+1, acc.Owner)
		fmt.Printf("   Username: %s\n", acc.Username)
		fmt.Printf("   Currency: %s (%s)\n", acc.Currency, acc.Locale)
		fmt.Printf("   Movements: %d\n", len(acc.Movements))
		fmt.Printf("   Balance: %s\n", format.Currency(acc.Balance(), acc.Locale, acc.Currency))
		fmt.Println()
	}
	return nil
}

func displayAccountsJSON(accounts []*model.Account) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(accounts)
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
