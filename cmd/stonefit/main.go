// stonefit fits the Stone multivalent binding model to the bundled
// titration and runs the model-adequacy analyses.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bindcurve/stone"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
)

var (
	version = "v0.1.0-default"

	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to YAML analysis config (optional, defaults used when omitted)",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}
)

func main() {
	app := &cli.App{
		Name:            "stonefit",
		Version:         version,
		Usage:           "Stone multivalent binding model fitting and diagnostics",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			configFlag,
			debugFlag,
		},
		Commands: []*cli.Command{
			fitCmd,
			crossvalCmd,
			bootstrapCmd,
			sensitivityCmd,
			plotCmd,
		},
		Before: func(c *cli.Context) error {
			initLogging(c.Bool(debugFlag.Name))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func initLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

// getConfig loads the configured analysis settings, or defaults.
func getConfig(c *cli.Context) (stone.Config, error) {
	path := c.String(configFlag.Name)
	if path == "" {
		return stone.DefaultConfig(), nil
	}
	cfg, err := stone.LoadConfig(path)
	if err != nil {
		return stone.Config{}, fmt.Errorf("loading config: %w", err)
	}
	slog.Debug("config loaded", "path", path)
	return cfg, nil
}
