package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/tesfafund/api/internal/config"
	"github.com/tesfafund/api/internal/database"
	"github.com/tesfafund/api/internal/seed"
)

func main() {
	file := flag.String("file", "seed/seed.yaml", "path to the YAML seed document")
	migrate := flag.Bool("migrate", false, "apply schema migrations before seeding")
	validateOnly := flag.Bool("validate", false, "only parse and validate the seed document")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	doc, err := seed.LoadFile(*file)
	if err != nil {
		slog.Error("failed to read seed file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := doc.Validate(); err != nil {
		slog.Error("invalid seed file", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *validateOnly {
		slog.Info("seed file is valid", slog.String("file", *file))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if *migrate {
		dir, err := database.FindMigrationsDir()
		if err != nil {
			slog.Error("failed to locate migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		migrations, err := database.LoadMigrations(dir)
		if err != nil {
			slog.Error("failed to load migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := database.ApplyMigrations(ctx, db, migrations); err != nil {
			slog.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("migrations applied", slog.Int("count", len(migrations)))
	}

	if _, err := seed.NewLoader(db, cfg.Security.BcryptCost).Apply(ctx, doc); err != nil {
		slog.Error("failed to seed database", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
