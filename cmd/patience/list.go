package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all solitaire games that can be played.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Num", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "---", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-5d  %s\n", maxIDLen, g.ID, g.GameID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'patience play <id>' to play a game.")
}
