package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raj-tembe/learn-with-ai/internal/db"
	"github.com/raj-tembe/learn-with-ai/internal/history"
	"github.com/raj-tembe/learn-with-ai/internal/notify"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the saved conversation log",
	Long: `Works directly against the local database, no server connection
is needed. The same log is available inside a chat session through
/history, /export and /clear.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()

		turns := store.LoadAll()
		if len(turns) == 0 {
			fmt.Println("No chat history yet")
			return nil
		}
		for i, turn := range turns {
			fmt.Printf("%d. [%s] %s tone, %s level\n", i+1, turn.Timestamp, turn.Tone, turn.Level)
			fmt.Printf("   Q: %s\n", turn.Question)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <markdown|html> <path>",
	Short: "Export the log to a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()

		format, path := history.ExportFormat(args[0]), args[1]

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()

		if err := store.Export(f, format, path); err != nil {
			return err
		}
		notify.NewTerminal().Successf("History exported to %s", path)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Clear all chat history") {
			return nil
		}

		store, closeStore, err := openHistory()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Clear(); err != nil {
			return err
		}
		notify.NewTerminal().Successf("Chat history cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory opens the history store without the rest of the app.
func openHistory() (*history.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	database, err := db.Open(cfg.HistoryDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening local database: %w", err)
	}

	store, err := history.Open(database)
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return store, func() { database.Close() }, nil
}
