// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var filesDefaultAttrs = []string{"name", "status", "additions", "deletions"}

func filesCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(ctx context.Context, cmd *cli.Command) ([]github.File, error) {
		pr, err := prArg(cmd)
		if err != nil {
			return nil, err
		}
		m, err := InitManager(cmd)
		if err != nil {
			return nil, err
		}
		files, err := m.ListFiles(ctx, pr)
		if err != nil {
			return nil, github.Friendly(err, PRErrorContext("list files", pr, ""))
		}
		return files, nil
	}

	return NewQueryActionRunner("files", filesDefaultAttrs, fn).Run(ctx, cmd)
}

func filesCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "files",
		Usage:     "list the files changed by a pull request",
		UsageText: "prctl files PR [options]",
		Action:    filesCommandAction,
		Meta:      meta,
	}).Build()
}
