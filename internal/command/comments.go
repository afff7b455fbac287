// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var (
	commentsDefaultAttrs = []string{"id", "line_number:line", "user_name:user", "text"}
	threadsDefaultAttrs  = []string{"id", "line_number:line", "user_name:user", "text", "replies[].text:replies"}
)

func fileComments(ctx context.Context, cmd *cli.Command) ([]github.Comment, error) {
	pr, file, err := prFileArgs(cmd)
	if err != nil {
		return nil, err
	}
	m, err := InitManager(cmd)
	if err != nil {
		return nil, err
	}
	comments, err := m.FileComments(ctx, pr, file)
	if err != nil {
		return nil, github.Friendly(err, PRErrorContext("list comments", pr, file))
	}
	return comments, nil
}

func commentsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("threaded") {
		fn := func(ctx context.Context, cmd *cli.Command) ([]github.Thread, error) {
			comments, err := fileComments(ctx, cmd)
			if err != nil {
				return nil, err
			}
			return github.Threads(comments), nil
		}
		return NewQueryActionRunner("comments", threadsDefaultAttrs, fn).Run(ctx, cmd)
	}

	return NewQueryActionRunner("comments", commentsDefaultAttrs, fileComments).Run(ctx, cmd)
}

func commentsCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "comments",
		Usage:     "list review comments on a pull request file",
		UsageText: "prctl comments PR FILE [--threaded] [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "threaded",
				Usage: "group replies under their root comment",
			},
		},
		Action: commentsCommandAction,
		Meta:   meta,
	}).Build()
}
