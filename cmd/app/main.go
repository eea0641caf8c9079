package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/d0sboots/VaultDict/internal"
	"github.com/d0sboots/VaultDict/internal/gamedata"
	"github.com/d0sboots/VaultDict/internal/index"
	"github.com/d0sboots/VaultDict/internal/lexicon"
	"github.com/d0sboots/VaultDict/internal/mcpserver"
	"github.com/d0sboots/VaultDict/internal/wikitable"
	pkgconfig "github.com/d0sboots/VaultDict/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// loadLexicon builds a lexicon service straight from the configured game
// data file, for the one-shot commands that don't need the SQLite index.
func loadLexicon(cfg *internal.Config) (*lexicon.Service, error) {
	src, err := gamedata.NewFileSource(cfg.GameData.Path)
	if err != nil {
		return nil, fmt.Errorf("open game data: %w", err)
	}
	raw, err := src.Read()
	if err != nil {
		return nil, fmt.Errorf("read game data: %w", err)
	}
	doc, err := gamedata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse game data: %w", err)
	}
	snap, err := lexicon.Build(doc, raw)
	if err != nil {
		return nil, fmt.Errorf("build lexicon: %w", err)
	}
	return lexicon.NewService(snap), nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runWikitable(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := loadLexicon(cfg)
	if err != nil {
		return err
	}
	return wikitable.Render(os.Stdout, svc.Snapshot())
}

func runLookup(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: lookup WORD")
	}
	svc, err := loadLexicon(cfg)
	if err != nil {
		return err
	}
	detail, err := svc.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("lookup %q: %w", name, err)
	}
	fmt.Printf("%s\t%s\n", detail.Name, detail.Glyphs)
	for _, part := range detail.Breakdown {
		fmt.Printf("  %s\t%s\n", part.Component, part.Glyphs)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := loadLexicon(cfg)
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	if err := index.Sync(db, svc.Snapshot(), logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return mcpserver.New(svc, db).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "vaultdict",
		Usage: "Dictionary service for a glyph-based writing system: lookups, search, transcription, and wiki export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server with live game-data reloading",
				Action: runServe,
			},
			{
				Name:   "wikitable",
				Usage:  "Render the full word list as MediaWiki table rows on stdout",
				Action: runWikitable,
			},
			{
				Name:      "lookup",
				Usage:     "Look up a single word or concept and print its glyphs",
				ArgsUsage: "WORD",
				Action:    runLookup,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
