// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var userDefaultAttrs = []string{"username"}

func userCommandAction(ctx context.Context, cmd *cli.Command) error {
	fn := func(ctx context.Context, cmd *cli.Command) ([]github.User, error) {
		m, err := InitManager(cmd)
		if err != nil {
			return nil, err
		}
		u, err := m.CurrentUser(ctx)
		if err != nil {
			return nil, github.Friendly(err, PRErrorContext("get current user", "", ""))
		}
		return []github.User{u}, nil
	}

	return NewQueryActionRunner("user", userDefaultAttrs, fn).Run(ctx, cmd)
}

func userCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "user",
		Usage:     "show the authenticated user",
		UsageText: "prctl user [options]",
		Action:    userCommandAction,
		Meta:      meta,
	}).Build()
}
