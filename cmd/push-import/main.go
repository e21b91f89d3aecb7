package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/push/internal/config"
	"github.com/claude/push/internal/ingest/alpha"
	"github.com/claude/push/internal/kv"
	"github.com/claude/push/internal/state"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	csvPath := flag.String("file", "", "path to an Alpha Progression CSV export (required)")
	dryRun := flag.Bool("dry-run", false, "parse the export and report without writing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: push-import -config config.yaml -file export.csv [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Error("failed to open export", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if *dryRun {
		log.Info("DRY RUN mode: nothing will be written")
		sessions, err := alpha.Parse(f)
		if err != nil {
			log.Error("parse failed", "error", err)
			os.Exit(1)
		}
		latest, ok := alpha.Latest(sessions)
		if !ok {
			log.Error("export contains no sessions")
			os.Exit(1)
		}
		log.Info("latest session",
			"sessions", len(sessions),
			"name", latest.Name,
			"date", latest.Date.Format("2006-01-02 15:04"),
			"exercises", len(latest.Exercises),
		)
		return
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := kv.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	st := state.New(store, log)
	st.Load(ctx)

	result, err := alpha.NewImporter(st, log).Import(ctx, f)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import stats",
		"session", result.SessionName,
		"date", result.SessionDate.Format("2006-01-02 15:04"),
		"exercises_imported", result.ExercisesImported,
		"exercises_matched", result.ExercisesMatched,
		"sets_imported", result.SetsImported,
	)
	log.Info("import complete")
}
