// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/prctl/prctl/internal/differ"
	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/meta"
)

var ErrNoNotebooks = errors.New("pull request changes no notebooks")

// isTerminal and pick are swapped out by tests.
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	pick = func(title string, choices []differ.Choice) (string, bool, error) {
		return differ.Pick(title, choices)
	}
)

// reviewCommandAction diffs a notebook across a pull request. Without FILE
// the notebook is picked from the files the pull request changes.
func reviewCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "review") {
		return nil
	}

	pr, err := prArg(cmd)
	if err != nil {
		return err
	}
	m, err := InitManager(cmd)
	if err != nil {
		return err
	}

	file := cmd.Args().Get(1)
	if file == "" {
		if file, err = chooseNotebook(ctx, m, pr); err != nil || file == "" {
			return err
		}
	}

	fc, err := m.FileContent(ctx, pr, file)
	if err != nil {
		return github.Friendly(err, PRErrorContext("get file content", pr, file))
	}

	r, err := m.FileNBDiff(ctx, fc.BaseContent, fc.HeadContent)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", file, err)
	}

	title := fmt.Sprintf("%s in %s @ %s", file, pr, shortSHA(fc.CommitID))
	if err := emitDiff(cmd, r, title); err != nil {
		return err
	}

	if !cmd.Bool("comments") || cmd.String("output") != "text" {
		return nil
	}
	comments, err := m.FileComments(ctx, pr, file)
	if err != nil {
		return github.Friendly(err, PRErrorContext("list comments", pr, file))
	}
	writeThreads(cmd, github.Threads(comments))
	return nil
}

// chooseNotebook returns the only changed notebook, or asks the user to pick
// one when there are several. An empty name means the user gave up.
func chooseNotebook(ctx context.Context, m *github.Manager, pr string) (string, error) {
	files, err := m.ListFiles(ctx, pr)
	if err != nil {
		return "", github.Friendly(err, PRErrorContext("list files", pr, ""))
	}

	var choices []differ.Choice
	for _, f := range files {
		if strings.HasSuffix(strings.ToLower(f.Name), ".ipynb") {
			choices = append(choices, differ.Choice{
				Name:   f.Name,
				Detail: fmt.Sprintf("%s +%d -%d", f.Status, f.Additions, f.Deletions),
			})
		}
	}

	switch {
	case len(choices) == 0:
		return "", fmt.Errorf("%w: %s", ErrNoNotebooks, pr)
	case len(choices) == 1:
		return choices[0].Name, nil
	case !isTerminal():
		names := make([]string, 0, len(choices))
		for _, c := range choices {
			names = append(names, c.Name)
		}
		return "", fmt.Errorf("several notebooks changed, name one of: %s", strings.Join(names, ", "))
	}

	name, ok, err := pick("Pick a notebook from "+pr, choices)
	if err != nil {
		return "", err
	}
	if !ok {
		log.Debug("review: nothing picked")
		return "", nil
	}
	return name, nil
}

func writeThreads(cmd *cli.Command, threads []github.Thread) {
	w := writer(cmd)
	fmt.Fprintf(w, "\n%d comment thread(s)\n", len(threads))
	for _, t := range threads {
		fmt.Fprintf(w, "\n@%d %s: %s\n", t.LineNumber, t.UserName, t.Text)
		for _, r := range t.Replies {
			fmt.Fprintf(w, "    %s: %s\n", r.UserName, r.Text)
		}
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func reviewCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewDiffFlags(),
		NewTokenFlag("review", meta.Config.Source),
		NewAPIURLFlag("review", meta.Config.Source),
		&cli.BoolFlag{
			Name:  "comments",
			Usage: "print the file's review threads after the diff",
		},
	)

	return &cli.Command{
		Name:      "review",
		Usage:     "diff a notebook across a pull request",
		UsageText: "prctl review PR [FILE] [--comments] [--color] [--all]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: reviewCommandAction,
	}
}
