// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/prctl/prctl/internal/config"
)

// Meta is the runtime state shared by every command: the raw arguments, the
// loaded configuration and the root context.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// Command returns the subcommand name from Args, or "" when there is none.
func (m Meta) Command() string {
	if len(m.Args) > 1 {
		return m.Args[1]
	}
	return ""
}
