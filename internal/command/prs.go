// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/filters"
	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var prsDefaultAttrs = []string{"id", "title", "updated_at"}

// prsOptions is the search the prs command runs.
type prsOptions struct {
	User       string
	Filter     github.Filter
	Qualifiers []string
}

func prsCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(ctx context.Context, cmd *cli.Command) ([]github.PullRequest, error) {
		var opts prsOptions
		if err := Augment(ctx, cmd, &opts, prsFlagAugmenter, prsServerSideFilterAugmenter); err != nil {
			return nil, err
		}

		m, err := InitManager(cmd)
		if err != nil {
			return nil, err
		}
		prs, err := m.ListPRs(ctx, opts.User, opts.Filter, opts.Qualifiers...)
		if err != nil {
			return nil, github.Friendly(err, PRErrorContext("list pull requests", "", ""))
		}
		return prs, nil
	}

	return NewQueryActionRunner("prs", prsDefaultAttrs, fn).Run(ctx, cmd)
}

// prsFlagAugmenter reads --user and --filter-by.
func prsFlagAugmenter(_ context.Context, cmd *cli.Command, opts *prsOptions) error {
	f, err := github.ParseFilter(cmd.String("filter-by"))
	if err != nil {
		return err
	}
	opts.Filter = f
	opts.User = cmd.String("user")
	return nil
}

// prsServerSideFilterAugmenter turns _key=value filters into search
// qualifiers.
func prsServerSideFilterAugmenter(_ context.Context, cmd *cli.Command, opts *prsOptions) error {
	opts.Qualifiers = append(opts.Qualifiers, filters.ServerSide(cmd.String("filter"))...)
	log.Debugf("prs options: %+v", *opts)
	return nil
}

func prsCommandBuilder(meta meta.Meta) *cli.Command {
	filterBy := &cli.StringFlag{
		Name:  "filter-by",
		Usage: "created or assigned",
		Value: string(github.FilterCreated),
		Validator: func(value string) error {
			return FlagValidators(value, FilterByValidator)
		},
	}
	user := &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "GitHub login to search for, defaults to the authenticated user",
	}

	return (&QueryCommandBuilder{
		Name:      "prs",
		Usage:     "list open pull requests",
		UsageText: "prctl prs [--filter-by created|assigned] [--user NAME] [options]",
		Flags: []cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("prs", meta.Config.Source, filterBy),
			NameSpacedValueChainFlagFromConfigFile("prs", meta.Config.Source, user),
		},
		Action: prsCommandAction,
		Meta:   meta,
	}).Build()
}

