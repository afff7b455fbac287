// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/meta"
)

// QueryCommandBuilder assembles a query subcommand (user, prs, files,
// comments) with the shared metadata, connection flags, output flags and
// validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns the configured cli.Command.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, qcb.Flags...)
	flags = append(flags,
		newTLDRFlag(),
		newSchemaFlag(),
		NewTokenFlag(qcb.Name, qcb.Meta.Config.Source),
		NewAPIURLFlag(qcb.Name, qcb.Meta.Config.Source),
	)
	flags = append(flags, NewGlobalFlags(qcb.Name, qcb.Meta.Config.Source)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}
