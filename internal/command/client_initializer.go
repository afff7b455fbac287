// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
)

// InitManager builds a github.Manager from --token and --api-url.
func InitManager(cmd *cli.Command) (*github.Manager, error) {
	p, err := github.New(cmd.String("token"), github.WithBaseURL(cmd.String("api-url")))
	if err != nil {
		return nil, fmt.Errorf("%w: use --token, PRCTL_TOKEN or GITHUB_TOKEN", err)
	}
	log.Debugf("manager: %s at %s", p.Name(), p.BaseURL())
	return github.NewManager(p), nil
}

// PRErrorContext builds the context used to explain a failed pull request
// operation.
func PRErrorContext(operation, pr, file string) github.ErrorContext {
	return github.ErrorContext{Operation: operation, PR: pr, File: file}
}
