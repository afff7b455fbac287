// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

// QueryActionRunner[T] is the common shape of the query commands: short
// circuit on --tldr or --schema, build attrs, fetch, then emit through the
// output pipeline. Only FetchFn differs between commands.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the query.
func (qar *QueryActionRunner[T]) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %s: args=%v", m.Command(), cmd.Args().Slice())

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %s", al.String())

	results, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}
	log.Debugf("%s: %d results", qar.CommandName, len(results))

	return EmitResults(results, al, cmd)
}

// NewQueryActionRunner returns a runner for commandName whose rows are T.
func NewQueryActionRunner[T any](
	commandName string,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *QueryActionRunner[T] {
	return &QueryActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   reflect.TypeOf((*T)(nil)).Elem(),
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
