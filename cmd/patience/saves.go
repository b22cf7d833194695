package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-patience/internal/storage"
)

var flagSavesDelete string

var savesCmd = &cobra.Command{
	Use:   "saves [game]",
	Short: "List or delete games saved in the database",
	Long: `List the games saved with S during play, newest first. Resume one
with 'patience play --resume <id>'.

Examples:
  patience saves
  patience saves freecell
  patience saves --delete 3f1c2a7e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagSavesDelete, "delete", "", "Delete the saved game with this id")
}

func runSaves(_ *cobra.Command, args []string) {
	store, err := storage.Open(appConfig.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagSavesDelete != "" {
		err := store.DeleteSave(flagSavesDelete)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			fmt.Fprintf(os.Stderr, "No saved game %q\n", flagSavesDelete)
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		default:
			fmt.Println("Deleted.")
		}
		return
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}
	saves, err := store.ListSaves(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-22s  %5s  %s\n", "ID", "Game", "Seed", "Move", "Saved")
	for _, s := range saves {
		fmt.Printf("  %-36s  %-10s  %-22s  %5d  %s\n",
			s.ID, s.GameID, s.Seed, s.MovesIndex, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
