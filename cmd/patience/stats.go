package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-patience/internal/platform/tui"
	"github.com/vovakirdan/tui-patience/internal/registry"
	"github.com/vovakirdan/tui-patience/internal/storage"
)

var flagStatsPlain bool

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show results and win rates",
	Long: `Display the recorded results. In a terminal this opens the statistics
screen; with --plain, or when the output is not a terminal, it prints a
summary per game and the latest results.

Examples:
  patience stats
  patience stats klondike
  patience stats --plain > results.txt`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsPlain, "plain", false, "Print instead of opening the statistics screen")
}

func runStats(_ *cobra.Command, args []string) {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'patience list' to see available games.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagStatsPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		if err := tui.RunStats(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if err := printStats(store, gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
	}
}

func printStats(store *storage.Store, gameID string) error {
	games := registry.List()
	for _, g := range games {
		if gameID != "" && g.ID != gameID {
			continue
		}
		st, err := store.GetGameStats(g.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%-16s %s\n", g.Title, tui.Summary(st))
	}

	results, err := store.RecentResults(gameID, 10)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println()
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %-22s  %-5s  %5s\n", "Date", "Game", "Seed", "Won", "Moves")
	fmt.Printf("  %-16s  %-10s  %-22s  %-5s  %5s\n", "----", "----", "----", "---", "-----")
	for _, r := range results {
		fmt.Printf("  %-16s  %-10s  %-22s  %-5t  %5d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID, r.Seed, r.Won, r.Moves)
	}
	return nil
}
