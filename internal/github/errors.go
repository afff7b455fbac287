// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prctl/prctl/internal/provider"
)

// ErrorContext carries input context for improving API error messages.
type ErrorContext struct {
	Operation string // e.g. "list files", "post comment"
	PR        string
	File      string
}

// Friendly wraps a fetch failure with a message a CLI user can act on, while
// keeping the original error reachable through errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	op := nonEmpty(ctx.Operation, "request")

	var fe *provider.FetchError
	if !errors.As(err, &fe) {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case fe.Kind == provider.KindUpstream && fe.Status == http.StatusUnauthorized:
		return fmt.Errorf("%s: authentication failed (401). Set PRCTL_TOKEN or GITHUB_TOKEN: %w", op, err)
	case fe.Kind == provider.KindUpstream && fe.Status == http.StatusForbidden:
		return fmt.Errorf("%s: access denied or rate limited (403): %w", op, err)
	case fe.Kind == provider.KindUpstream && fe.Status == http.StatusNotFound && ctx.File != "":
		return fmt.Errorf("%s: %q not found in pull request %s (404): %w", op, ctx.File, nonEmpty(ctx.PR, "<unknown>"), err)
	case fe.Kind == provider.KindUpstream && fe.Status == http.StatusNotFound && ctx.PR != "":
		return fmt.Errorf("%s: pull request %s not found (404): %w", op, ctx.PR, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
