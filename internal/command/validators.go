// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
	"github.com/prctl/prctl/internal/output"
)

type FlagValidatorType func(any) error

// FlagValidators runs validators in order and returns the first failure.
func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that single flag validators
// cannot see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("color") && c.String("output") != "" && c.String("output") != "text" {
		return fmt.Errorf("--color only applies to --output text")
	}
	return nil
}

func OutputValidator(value any) error {
	if s, ok := value.(string); ok && slices.Contains(output.Formats, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", output.Formats)
}

func FilterByValidator(value any) error {
	s, _ := value.(string)
	_, err := github.ParseFilter(s)
	return err
}

func PRValidator(value any) error {
	s, _ := value.(string)
	_, err := github.PRLink(s)
	return err
}

func PositiveValidator(value any) error {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("must be a number: %w", err)
		}
		n = parsed
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}
