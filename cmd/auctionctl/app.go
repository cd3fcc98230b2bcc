package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/server"
)

// auctionReader is the read side of the auction service used by the commands.
type auctionReader interface {
	Players(ctx context.Context) ([]players.Player, error)
	UnsoldPlayers(ctx context.Context) ([]players.Player, error)
	TeamStats(ctx context.Context) ([]teams.TeamStats, error)
	TeamSummaries(ctx context.Context) ([]teams.TeamSummary, error)
	Leaderboard(ctx context.Context) ([]teams.TeamStats, error)
	TeamStanding(ctx context.Context, teamID string) (teams.TeamStanding, error)
	SoldPlayersByTeam(ctx context.Context, teamID string) ([]players.Player, error)
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "auctionctl",
		Usage:     "query the auction sheet from the command line",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "provider", Value: "gsheets", Usage: "sheet source (gsheets or fixture)", EnvVars: []string{"PROVIDER"}},
			&cli.StringFlag{Name: "sheet-id", Usage: "spreadsheet id", EnvVars: []string{"SHEET_ID"}},
			&cli.StringFlag{Name: "home-nation", Usage: "nation treated as domestic", EnvVars: []string{"HOME_NATION"}},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level", EnvVars: []string{"LOG_LEVEL"}},
			&cli.BoolFlag{Name: "compact", Usage: "print single-line JSON"},
		},
		Commands: []*cli.Command{
			{
				Name:  "players",
				Usage: "list reconciled players",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "sold or unsold"},
					&cli.StringFlag{Name: "sort", Usage: "sheet, name, price or points"},
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "case-insensitive match on name, role, nation or team"},
				},
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					q, err := players.ParseQuery(c.String("status"), c.String("sort"), c.String("search"))
					if err != nil {
						return nil, err
					}
					items, err := svc.Players(c.Context)
					if err != nil {
						return nil, err
					}
					return q.Apply(items), nil
				}),
			},
			{
				Name:  "unsold",
				Usage: "list players without a buyer",
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					return svc.UnsoldPlayers(c.Context)
				}),
			},
			{
				Name:  "teams",
				Usage: "list team statistics",
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					return svc.TeamStats(c.Context)
				}),
			},
			{
				Name:  "summary",
				Usage: "list compact team summaries",
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					return svc.TeamSummaries(c.Context)
				}),
			},
			{
				Name:  "leaderboard",
				Usage: "list teams ranked by points",
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					return svc.Leaderboard(c.Context)
				}),
			},
			{
				Name:      "team",
				Usage:     "show one team",
				ArgsUsage: "<team-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "players", Usage: "list the team's sold players instead"},
				},
				Action: withService(func(c *cli.Context, svc auctionReader) (any, error) {
					id := c.Args().First()
					if id == "" {
						return nil, errors.New("team id required")
					}
					if c.Bool("players") {
						return svc.SoldPlayersByTeam(c.Context, id)
					}
					return svc.TeamStanding(c.Context, id)
				}),
			},
		},
	}
}

// serviceBuilder is swapped in tests.
var serviceBuilder = func(cfg config.Config, logger *slog.Logger) (auctionReader, error) {
	return server.NewAuctionService(cfg, logger)
}

func withService(run func(c *cli.Context, svc auctionReader) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := loadConfig(c)
		logger := logging.NewLogger(logging.Config{
			Level:   c.String("log-level"),
			Service: "auctionctl",
			Output:  c.App.ErrWriter,
		})

		svc, err := serviceBuilder(cfg, logger)
		if err != nil {
			return err
		}
		result, err := run(c, svc)
		if err != nil {
			return err
		}
		return printJSON(c.App.Writer, result, c.Bool("compact"))
	}
}

func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	cfg.Provider = c.String("provider")
	if id := c.String("sheet-id"); id != "" {
		cfg.Sheets.SheetID = id
	}
	if nation := c.String("home-nation"); nation != "" {
		cfg.Sheets.HomeNation = nation
	}
	return cfg
}

func printJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
