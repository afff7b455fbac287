// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var contentDefaultAttrs = []string{"commit_id", "base_content:base:-40", "head_content:head:-40"}

// contentCommandAction prints one side of the file as-is with --side, and
// otherwise emits both sides through the output pipeline.
func contentCommandAction(ctx context.Context, cmd *cli.Command) error {
	side := cmd.String("side")

	fn := func(ctx context.Context, cmd *cli.Command) ([]github.FileContent, error) {
		pr, file, err := prFileArgs(cmd)
		if err != nil {
			return nil, err
		}
		m, err := InitManager(cmd)
		if err != nil {
			return nil, err
		}
		fc, err := m.FileContent(ctx, pr, file)
		if err != nil {
			return nil, github.Friendly(err, PRErrorContext("get file content", pr, file))
		}
		return []github.FileContent{fc}, nil
	}

	if side == "" {
		return NewQueryActionRunner("content", contentDefaultAttrs, fn).Run(ctx, cmd)
	}

	results, err := fn(ctx, cmd)
	if err != nil {
		return err
	}
	text := results[0].HeadContent
	if side == "base" {
		text = results[0].BaseContent
	}
	_, err = io.WriteString(writer(cmd), text)
	return err
}

func contentCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "content",
		Usage:     "show a file at the base and head of a pull request",
		UsageText: "prctl content PR FILE [--side base|head] [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "side",
				Usage: "print only the base or head text",
				Validator: func(value string) error {
					if value != "base" && value != "head" {
						return fmt.Errorf("must be base or head")
					}
					return nil
				},
			},
		},
		Action: contentCommandAction,
		Meta:   meta,
	}).Build()
}
