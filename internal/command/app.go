// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/config"
	"github.com/prctl/prctl/internal/meta"
)

// InitApp builds the prctl command tree. args[1], when it is not a flag,
// names the subcommand and doubles as the config namespace.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine; everything has a flag or env fallback.
	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "prctl",
		Usage: "Pull request and notebook review control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "prctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		userCommandBuilder(m),
		prsCommandBuilder(m),
		filesCommandBuilder(m),
		contentCommandBuilder(m),
		commentsCommandBuilder(m),
		commentCommandBuilder(m),
		nbdiffCommandBuilder(m),
		reviewCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Sorted flags read better in --help.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
