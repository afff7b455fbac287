// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/prctl/prctl/internal/config"
	"github.com/prctl/prctl/internal/differ"
	"github.com/prctl/prctl/internal/meta"
)

// nbdiffCommandAction diffs two local notebooks. Either path may be "-" for
// stdin.
func nbdiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "nbdiff") {
		return nil
	}
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("nbdiff needs two notebooks, got %d", cmd.Args().Len())
	}
	prevPath, currPath := cmd.Args().Get(0), cmd.Args().Get(1)
	if prevPath == "-" && currPath == "-" {
		return fmt.Errorf("only one notebook can come from stdin")
	}

	previous, err := readInput(cmd, prevPath)
	if err != nil {
		return err
	}
	current, err := readInput(cmd, currPath)
	if err != nil {
		return err
	}

	r, err := differ.Diff(ctx, previous, current)
	if err != nil {
		return err
	}
	log.Debugf("nbdiff: %+v", r.Summary())

	return emitDiff(cmd, r, prevPath+" -> "+currPath)
}

// emitDiff writes r as text, JSON or YAML per --output.
func emitDiff(cmd *cli.Command, r *differ.Result, title string) error {
	w := writer(cmd)

	switch cmd.String("output") {
	case "json":
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal diff: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(diffDocument(r))
		if err != nil {
			return fmt.Errorf("failed to marshal diff: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	showAll, _ := config.GetBool(cmd.Name+".all", false)
	return differ.Render(w, r, differ.RenderOptions{
		Title:         title,
		Color:         cmd.Bool("color"),
		ShowUnchanged: cmd.Bool("all") || showAll,
	})
}

// diffDocument round trips r through JSON so YAML output uses the same keys.
func diffDocument(r *differ.Result) any {
	b, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	var doc any
	_ = json.Unmarshal(b, &doc)
	return doc
}

// NewDiffFlags are the flags shared by nbdiff and review.
func NewDiffFlags() []cli.Flag {
	return []cli.Flag{
		NewColorFlag(),
		&cli.BoolFlag{
			Name:  "all",
			Usage: "show unchanged cells too",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator, func(v any) error {
					if v == "raw" {
						return fmt.Errorf("raw is not supported for diffs")
					}
					return nil
				})
			},
		},
		newTLDRFlag(),
	}
}

func nbdiffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "nbdiff",
		Usage:     "diff two local notebooks",
		UsageText: "prctl nbdiff PREVIOUS CURRENT [--color] [--all] [--output text|json|yaml]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewDiffFlags(),
		Action:    nbdiffCommandAction,
	}
}

