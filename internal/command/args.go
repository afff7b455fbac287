// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

var (
	ErrMissingPR   = errors.New("missing pull request argument")
	ErrMissingFile = errors.New("missing file argument")
)

// prArg returns the validated PR positional argument.
func prArg(cmd *cli.Command) (string, error) {
	pr := cmd.Args().Get(0)
	if pr == "" {
		return "", ErrMissingPR
	}
	if err := PRValidator(pr); err != nil {
		return "", err
	}
	return pr, nil
}

// prFileArgs returns the PR and FILE positional arguments.
func prFileArgs(cmd *cli.Command) (string, string, error) {
	pr, err := prArg(cmd)
	if err != nil {
		return "", "", err
	}
	file := cmd.Args().Get(1)
	if file == "" {
		return "", "", ErrMissingFile
	}
	return pr, file, nil
}

// readInput reads a local file, or stdin when path is "-".
func readInput(cmd *cli.Command, path string) (string, error) {
	if path == "-" {
		r := io.Reader(os.Stdin)
		if cmd != nil && cmd.Root() != nil && cmd.Root().Reader != nil {
			r = cmd.Root().Reader
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
