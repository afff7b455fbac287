// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/attrs"
	"github.com/prctl/prctl/internal/meta"
	"github.com/prctl/prctl/internal/output"
)

// BuildAttrs constructs an AttrList from defaults plus --attrs, then applies
// the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// DumpSchemaIfRequested lists the attributes of t when --schema is set and
// reports whether it did.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if !cmd.Bool("schema") {
		return false
	}
	output.DumpSchema(t, writer(cmd))
	return true
}

// EmitResults marshals results to JSON and hands them to the output pipeline.
func EmitResults(results any, al attrs.AttrList, cmd *cli.Command) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return output.SliceDiceSpit(raw, al, output.OptionsFrom(cmd), writer(cmd))
}

// GetMeta returns the meta.Meta stored in the command's Metadata, or the
// zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR runs `tldr prctl <subcmd>` when --tldr is set and reports
// whether the caller should stop.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if !cmd.Bool("tldr") {
		return false
	}
	if _, err := exec.LookPath("tldr"); err == nil {
		c := exec.CommandContext(ctx, "tldr", "prctl", subcmd)
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		_ = c.Run()
	}
	return true
}

// writer is where a command prints. Tests replace it through cmd.Writer.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil && cmd.Root() != nil && cmd.Root().Writer != nil {
		return cmd.Root().Writer
	}
	return os.Stdout
}
