package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	_ "go.uber.org/automaxprocs"

	"github.com/PeerDB-io/wormcell/cmd"
	"github.com/PeerDB-io/wormcell/logger"
	"github.com/PeerDB-io/wormcell/wormenv"
)

func main() {
	appCtx, appClose := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appClose()

	// a missing .env is fine, the environment and flag defaults still apply
	envErr := godotenv.Load()

	slog.SetDefault(slog.New(logger.NewHandler(
		slog.NewJSONHandler(os.Stdout, logger.NewHandlerOptions(wormenv.WormcellLogLevel())))))
	if envErr != nil {
		slog.DebugContext(appCtx, "no .env file loaded", slog.Any("error", envErr))
	}

	if err := newApp().Run(appCtx, os.Args); err != nil {
		log.Printf("error running app: %+v", err)
		os.Exit(1)
	}
}

// strictFlag is built per command, flags keep parse state.
func strictFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "strict",
		Value:   wormenv.WormcellStrict(),
		Usage:   "Use the panicking MustSet/MustGet entry points",
		Sources: cli.EnvVars("WORMCELL_STRICT"),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "wormcell",
		Usage: "Exercise write-once, read-many cells",
		Commands: []*cli.Command{
			{
				Name:  "race",
				Usage: "Race concurrent writers on one shared cell",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    "writers",
						Aliases: []string{"w"},
						Value:   wormenv.WormcellWriters(),
						Sources: cli.EnvVars("WORMCELL_WRITERS"),
					},
					&cli.UintFlag{
						Name:    "readers",
						Aliases: []string{"r"},
						Value:   wormenv.WormcellReaders(),
						Sources: cli.EnvVars("WORMCELL_READERS"),
					},
					strictFlag(),
				},
				Action: func(ctx context.Context, clicmd *cli.Command) error {
					result, err := cmd.RaceMain(cmd.WithRunID(ctx), &cmd.RaceOptions{
						Writers: clicmd.Uint("writers"),
						Readers: clicmd.Uint("readers"),
						Strict:  clicmd.Bool("strict"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("winner=%d doubleSets=%d\n", result.Winner, result.DoubleSets)
					return nil
				},
			},
			{
				Name:  "latebind",
				Usage: "Hand out readers of a single-owner cell before setting it",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "value",
						Value:   wormenv.WormcellLateBindValue(),
						Sources: cli.EnvVars("WORMCELL_LATEBIND_VALUE"),
					},
					&cli.UintFlag{
						Name:  "handles",
						Value: 3,
					},
					strictFlag(),
				},
				Action: func(ctx context.Context, clicmd *cli.Command) error {
					values, err := cmd.LateBindMain(cmd.WithRunID(ctx), &cmd.LateBindOptions{
						Value:   int(clicmd.Int("value")),
						Handles: clicmd.Uint("handles"),
						Strict:  clicmd.Bool("strict"),
					})
					if err != nil {
						return err
					}
					fmt.Println(values)
					return nil
				},
			},
			{
				Name:      "registry",
				Usage:     "Bind named cells, e.g. registry dsn=postgres://localhost region",
				ArgsUsage: "name[=value]...",
				Action: func(ctx context.Context, clicmd *cli.Command) error {
					result, err := cmd.RegistryMain(cmd.WithRunID(ctx), &cmd.RegistryOptions{
						Entries: clicmd.Args().Slice(),
					})
					if err != nil {
						return err
					}
					for _, line := range result.Lines() {
						fmt.Println(line)
					}
					return nil
				},
			},
		},
	}
}
