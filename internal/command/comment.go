// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var ErrCommentTarget = errors.New("use either --reply-to or --line with --commit")

func commentCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(ctx context.Context, cmd *cli.Command) ([]github.Comment, error) {
		pr, file, err := prFileArgs(cmd)
		if err != nil {
			return nil, err
		}

		nc := github.NewComment{
			Text:      cmd.String("text"),
			InReplyTo: int64(cmd.Int("reply-to")),
			CommitID:  cmd.String("commit"),
			Position:  int64(cmd.Int("line")),
		}
		if (nc.InReplyTo != 0) == (nc.Position != 0) {
			return nil, ErrCommentTarget
		}

		m, err := InitManager(cmd)
		if err != nil {
			return nil, err
		}
		if nc.InReplyTo == 0 && nc.CommitID == "" {
			links, err := m.Links(ctx, pr, file)
			if err != nil {
				return nil, github.Friendly(err, PRErrorContext("resolve head commit", pr, file))
			}
			nc.CommitID = links.CommitID
			log.Debugf("comment: using head commit %s", nc.CommitID)
		}

		c, err := m.PostFileComment(ctx, pr, file, nc)
		if err != nil {
			return nil, github.Friendly(err, PRErrorContext("post comment", pr, file))
		}
		return []github.Comment{c}, nil
	}

	return NewQueryActionRunner("comment", commentsDefaultAttrs, fn).Run(ctx, cmd)
}

func commentCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "comment",
		Usage:     "post a review comment on a pull request file",
		UsageText: "prctl comment PR FILE --text T (--line N [--commit SHA] | --reply-to ID)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "text",
				Aliases:  []string{"m"},
				Usage:    "comment body",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "line",
				Usage: "diff position to start a new thread at",
				Validator: func(v int) error {
					return FlagValidators(v, PositiveValidator)
				},
			},
			&cli.StringFlag{
				Name:  "commit",
				Usage: "commit to anchor a new thread to, defaults to the pull request head",
			},
			&cli.IntFlag{
				Name:  "reply-to",
				Usage: "id of the comment to reply to",
				Validator: func(v int) error {
					return FlagValidators(v, PositiveValidator)
				},
			},
		},
		Action: commentCommandAction,
		Meta:   meta,
	}).Build()
}
