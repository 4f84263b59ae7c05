// Command roster-import replaces the stored roster with a CSV or XLSX file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ArowuTest/nebula-luck-backend/internal/bootstrap"
	"github.com/ArowuTest/nebula-luck-backend/internal/config"
	"github.com/ArowuTest/nebula-luck-backend/internal/repositories"
	"github.com/ArowuTest/nebula-luck-backend/internal/utils"
	"github.com/ArowuTest/nebula-luck-backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./config.yaml)")
	dryRun := flag.Bool("dry-run", false, "parse the file and print the participants without saving")
	clearHistory := flag.Bool("clear-history", false, "also clear the winner history")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: roster-import [-config file] [-dry-run] [-clear-history] <roster.csv|roster.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, "text")

	format, err := utils.DetectRosterFormat(path)
	if err != nil {
		log.Fatal(err)
	}
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	roster, err := utils.ImportRoster(file, format)
	if err != nil {
		log.Fatalf("Failed to import %s: %v", path, err)
	}

	if *dryRun {
		for _, p := range roster {
			fmt.Printf("%s\t%s\n", p.Name, p.Department)
		}
		fmt.Printf("%d participants\n", len(roster))
		return
	}

	ctx := context.Background()
	store, err := bootstrap.OpenSlotStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.Close(ctx)

	repo := repositories.NewSnapshotRepository(store)
	if err := repo.SaveRoster(ctx, roster); err != nil {
		log.Fatalf("Failed to save roster: %v", err)
	}
	if *clearHistory {
		if err := repo.SaveLedger(ctx, nil); err != nil {
			log.Fatalf("Failed to clear history: %v", err)
		}
	}

	log.Printf("Imported %d participants from %s into the %s store", len(roster), path, cfg.Store.Driver)
}
