package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/Azhovan/scanfmt"
	"github.com/Azhovan/scanfmt/localefile"
)

const (
	envFormat = "SCANFMT_FORMAT"
	envLocale = "SCANFMT_LOCALE"
)

var (
	format     string
	typeList   string
	localePath string
	asJSON     bool
	spans      bool
	verbose    bool
	encoding   string
)

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "format string, e.g. \"{} {:x}\"",
			Sources:     cli.EnvVars(envFormat),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "types",
			Aliases:     []string{"t"},
			Usage:       "comma-separated argument types (" + strings.Join(typeNames(), ", ") + ")",
			Destination: &typeList,
		},
		&cli.StringFlag{
			Name:        "locale",
			Usage:       "locale file (yaml, json or toml) used by fields with the L flag",
			Sources:     cli.EnvVars(envLocale),
			Destination: &localePath,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "log scanning decisions to stderr",
			Destination: &verbose,
		},
	}
}

// newLogger returns a charm logger installed as the slog handler.
func newLogger() (*log.Logger, *slog.Logger) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "scanfmt",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, slog.New(logger)
}

// newScanner builds the scanner configured by the flags.
func newScanner(lg *slog.Logger) (*scanfmt.Scanner, error) {
	s := scanfmt.NewScanner().WithLogger(lg)
	if strings.TrimSpace(localePath) == "" {
		return s, nil
	}
	loc, err := localefile.Load(localePath, localefile.Options{Required: true})
	if err != nil {
		return nil, err
	}
	return s.WithLocale(loc), nil
}
