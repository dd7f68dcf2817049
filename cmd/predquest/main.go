package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/DaanHessen/predquest/internal/content"
	"github.com/DaanHessen/predquest/internal/engine"
	"github.com/DaanHessen/predquest/internal/store"
	"github.com/DaanHessen/predquest/internal/text"
	"github.com/DaanHessen/predquest/internal/ui"
	"github.com/DaanHessen/predquest/internal/util"
)

var (
	version      = "0.1.0"
	rulesVersion = version
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred closes always happen.
func run() error {
	cfg, err := util.Load()
	if err != nil {
		return err
	}
	cfg.RulesVersion = rulesVersion

	flag.StringVar(&cfg.SeedText, "seed", cfg.SeedText, "Run seed string (optional; random if omitted)")
	flag.StringVar(&cfg.DSN, "dsn", cfg.DSN, "PostgreSQL DSN for the play journal (optional)")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML catalog file (built-in PredTest catalog if omitted)")
	flag.StringVar(&cfg.GuideDir, "guide", cfg.GuideDir, "Directory of facilitator markdown pages (optional)")
	flag.StringVar(&cfg.TextDensity, "density", cfg.TextDensity, "Text density: concise|standard|rich")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Colour theme")
	flag.IntVar(&cfg.Scenario, "scenario", cfg.Scenario, "Starting scenario id")
	flag.StringVar(&cfg.RewardMode, "reward", cfg.RewardMode, "Token reward mode: chance|streak")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "predquest [--seed s] [--dsn DSN] [--catalog file] [--density=concise|standard|rich] | migrate up|down|version | catalog check <file> | journal <run-id> | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("predquest", version)
			return nil
		case "migrate":
			return runMigrate(cfg, args[1:])
		case "catalog":
			return runCatalog(args[1:])
		case "journal":
			return runJournal(cfg, args[1:])
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	seedText := strings.TrimSpace(cfg.SeedText)
	if seedText == "" {
		generated, err := generateSeed()
		if err != nil {
			return errors.Wrap(err, "failed to generate seed")
		}
		seedText = generated
		fmt.Printf("New run seed: %s\n", seedText)
	}
	cfg.SeedText = seedText

	logFile, err := tea.LogToFile(cfg.LogFile, "predquest")
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	cat, err := content.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "name", cat.Name, "challenges", len(cat.Challenges), "quests", len(cat.Quests))

	density, err := text.ParseDensity(cfg.TextDensity)
	if err != nil {
		return err
	}
	reward, err := engine.NewRewardPolicy(engine.RewardMode(cfg.RewardMode), cfg.RewardChance, cfg.RewardStreak)
	if err != nil {
		return err
	}

	seed, err := engine.NewRunSeed(seedText)
	if err != nil {
		return errors.Wrap(err, "invalid seed")
	}

	ctx := context.Background()
	opts := []engine.SessionOption{
		engine.WithReward(reward),
		engine.WithScenario(cfg.Scenario),
		engine.WithTokens(cfg.StartTokens),
	}

	if cfg.DSN != "" {
		db, recorder, runSeed, err := openJournal(ctx, cfg, cat, seed, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		seed = runSeed
		opts = append(opts, engine.WithRecorder(recorder))
	}
	opts = append(opts, engine.WithRandom(seed.Stream("session")))
	session := engine.NewSession(cat, opts...)

	narrator := text.NewTemplateNarrator(cat, density)
	if cfg.GuideDir != "" {
		guide, err := text.NewGuideNarrator(cfg.GuideDir)
		if err != nil {
			return err
		}
		narrator = text.WithFallback(guide, narrator)
	}

	return ui.Run(ctx, session, narrator, cfg, logger, version)
}

// openJournal applies migrations, registers the run and mixes its id into the seed.
func openJournal(ctx context.Context, cfg util.Config, cat *engine.Catalog, seed engine.RunSeed, logger *slog.Logger) (*store.DB, engine.Recorder, engine.RunSeed, error) {
	mig, err := store.NewMigrator(cfg.DSN)
	if err != nil {
		return nil, nil, seed, errors.Wrap(err, "migrations init failed")
	}
	migCtx, cancelMig := context.WithTimeout(ctx, 30*time.Second)
	defer cancelMig()
	if err := mig.Up(migCtx); err != nil && err != store.ErrNoChange {
		return nil, nil, seed, errors.Wrap(err, "migrations failed")
	}

	db, err := store.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, seed, errors.Wrap(err, "failed to open database")
	}
	opening := engine.OpeningJournal(cat, cfg.Scenario, cfg.StartTokens)
	run, err := store.StartRun(ctx, db, cfg.SeedText, cfg.RulesVersion, cat.Name, opening)
	if err != nil {
		db.Close()
		return nil, nil, seed, errors.Wrap(err, "failed to register run")
	}
	logger.Info("journal run", "run", run.ID, "seed", cfg.SeedText)
	recorder := store.NewJournalRecorder(ctx, store.NewJournalRepo(db), run.ID, logger)
	return db, recorder, seed.WithRunContext(run.ID.String(), cfg.RulesVersion), nil
}

func runMigrate(cfg util.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("migrate requires 'up', 'down' or 'version'")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(cfg.DSN)
	if err != nil {
		return err
	}
	switch args[0] {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			return err
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			return err
		}
		fmt.Println("Migrations rolled back")
	case "version":
		v, dirty, ok, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No migrations applied")
			return nil
		}
		fmt.Printf("Schema version %d (dirty=%v)\n", v, dirty)
	default:
		return errors.New("unknown migrate action; use up|down|version")
	}
	return nil
}

func runCatalog(args []string) error {
	if len(args) < 2 || args[0] != "check" {
		return errors.New("usage: catalog check <file>")
	}
	cat, err := content.Load(args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d challenges, %d quests, %d roles, %d scenarios, %d board cells\n",
		args[1], len(cat.Challenges), len(cat.Quests), len(cat.Roles), len(cat.Scenarios), len(cat.BoardCells()))
	return nil
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
