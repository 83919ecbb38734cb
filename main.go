package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/fragmede/hackerterm/internal/commands"
	"github.com/fragmede/hackerterm/internal/config"
	"github.com/fragmede/hackerterm/internal/logutils"
)

// Populated at build-time via -ldflags.
var version = "dev"

func build() string {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				return mv
			}
		}
	}
	return version
}

func main() {
	ctx := context.Background()

	var (
		logCloser     func()
		runtimeCloser func()
		rt            = &commands.Runtime{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "hackerterm",
		Usage:     "Read Hacker News in the terminal",
		UsageText: "hackerterm [global options] [command]",
		Description: `Lists the current top stories and lets you drill into any story's
comment thread.

Run 'hackerterm' with no arguments to open the interactive reader.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("HACKERTERM_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs are discarded when empty)",
				Sources:     cli.EnvVars("HACKERTERM_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("HACKERTERM_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of top stories to load (overrides story_limit)",
				Sources:     cli.EnvVars("HACKERTERM_LIMIT"),
				Destination: &flags.Limit,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			runtime, closeRuntime, err := commands.Setup(flags)
			if err != nil {
				return ctx, err
			}
			*rt = *runtime
			runtimeCloser = closeRuntime
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if runtimeCloser != nil {
				runtimeCloser()
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, rt)

	app = commands.NewDumpCmd(flags, rt).Register(app)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'hackerterm --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "hackerterm: %v\n", err)
		os.Exit(1)
	}
}
