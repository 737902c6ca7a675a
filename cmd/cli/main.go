package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"visittracker/pkg/adapters/repository/sqlite"
	"visittracker/pkg/config"
)

func main() {
	statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	resetCmd := flag.NewFlagSet("reset", flag.ExitOnError)
	resetYes := resetCmd.Bool("yes", false, "skip confirmation")

	if len(os.Args) < 2 {
		fmt.Println("expected 'stats', 'export' or 'reset' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open visit store: %v", err)
	}

	switch os.Args[1] {
	case "stats":
		statsCmd.Parse(os.Args[2:])
		doStats(repo)
	case "export":
		exportCmd.Parse(os.Args[2:])
		doExport(repo)
	case "reset":
		resetCmd.Parse(os.Args[2:])
		doReset(repo, *resetYes)
	default:
		fmt.Println("expected 'stats', 'export' or 'reset' subcommands")
		os.Exit(1)
	}
}

func doStats(repo *sqlite.SQLiteRepository) {
	stats, err := repo.Stats(context.Background())
	if err != nil {
		log.Fatalf("Stats failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(stats); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doExport(repo *sqlite.SQLiteRepository) {
	visits, err := repo.Dump(context.Background())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(visits); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doReset(repo *sqlite.SQLiteRepository, yes bool) {
	if !yes {
		fmt.Print("This deletes all recorded visits. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("aborted")
			return
		}
	}

	if err := repo.DeleteAll(context.Background()); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	log.Printf("Analytics data cleared")
}
