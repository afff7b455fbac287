// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/command"
	"github.com/prctl/prctl/internal/config"
	"github.com/prctl/prctl/internal/log"
	"github.com/prctl/prctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @sets and drops repeated flags. Completion
// arguments pass through untouched. isBool reports which flags take no value.
func processCommandArgs(args []string, isBool func(string) bool) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}
	args = processSetOnly(args, func(key string) []string {
		entries, _ := config.GetStringSlice(key)
		return entries
	})
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args, isBool)
}

// boolFlags returns a predicate matching every spelling of the named
// subcommand's boolean flags, e.g. "--all" and "-a".
func boolFlags(app *cli.Command, name string) func(string) bool {
	names := map[string]bool{}
	for _, sub := range app.Commands {
		if sub.Name != name {
			continue
		}
		for _, f := range sub.Flags {
			if _, ok := f.(*cli.BoolFlag); !ok {
				continue
			}
			for _, n := range f.Names() {
				names["-"+n] = true
				names["--"+n] = true
			}
		}
	}
	return func(flag string) bool { return names[flag] }
}

// processSetOnly replaces the first @name argument with the entries of the
// <command>.<name> config list, each split on whitespace. lookup resolves the
// config key.
func processSetOnly(args []string, lookup func(string) []string) []string {
	if len(args) < 3 {
		return args
	}
	for i := 2; i < len(args); i++ {
		name, ok := strings.CutPrefix(args[i], "@")
		if !ok || name == "" {
			continue
		}

		var expanded []string
		for _, entry := range lookup(args[1] + "." + name) {
			expanded = append(expanded, strings.Fields(entry)...)
		}

		out := make([]string, 0, len(args)-1+len(expanded))
		out = append(out, args[:i]...)
		out = append(out, expanded...)
		return append(out, args[i+1:]...)
	}
	return args
}

// deduplicateFlags drops earlier occurrences of a repeated flag so the last
// one wins, which lets the command line override flags injected by an @set.
// A flag without "=" takes the next argument as its value unless isBool
// reports it as boolean or that argument is itself a flag. Positional
// arguments are kept in place. A nil isBool treats every flag as valued.
func deduplicateFlags(args []string, isBool func(string) bool) []string {
	if len(args) <= 2 {
		return args
	}

	type occurrence struct {
		name  string
		parts []string
	}
	var items []occurrence
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			items = append(items, occurrence{parts: []string{a}})
			continue
		}
		name, _, hasValue := strings.Cut(a, "=")
		parts := []string{a}
		valued := !hasValue && (isBool == nil || !isBool(name))
		if valued && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			parts = append(parts, args[i+1])
			i++
		}
		items = append(items, occurrence{name: name, parts: parts})
	}

	last := map[string]int{}
	for i, it := range items {
		if it.name != "" {
			last[it.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, it := range items {
		if it.name != "" && last[it.name] != i {
			continue
		}
		out = append(out, it.parts...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
// Unless process is false the arguments go through processCommandArgs first,
// using the app's own flag definitions.
func initAndRunApp(args []string, process bool) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if process {
		args = processCommandArgs(args, boolFlags(app, args[1]))
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain(args []string) int {
	log.InitLogger()
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// --help goes straight to the CLI.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return initAndRunApp(args, false)
		}
	}

	return initAndRunApp(args, true)
}
