package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate a format string against a type list without reading input",
		Flags: formatFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, lg := newLogger()

			if strings.TrimSpace(format) == "" {
				return cli.Exit("error: --format is required unless "+envFormat+" is set", 1)
			}
			names, err := parseTypes(typeList)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			s, err := newScanner(lg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			_, args := newTargets(names)
			if err := s.CheckFormat(format, args...); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			logger.Info("format ok", "format", format, "types", strings.Join(names, ","))
			return nil
		},
	}
}
