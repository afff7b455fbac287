// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/github"
)

// Flags hold parse state, so every command gets its own instances.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output shaping flags shared by every query
// command. With a namespace and config file, --padding may also come from the
// config file.
func NewGlobalFlags(params ...string) []cli.Flag {
	padding := &cli.IntFlag{
		Name:  "padding",
		Usage: "spaces between text columns",
		Value: 2,
	}
	if len(params) == 2 {
		padding.Sources = cli.NewValueSourceChain(
			yaml.YAML(params[0]+".padding", altsrc.StringSourcer(params[1])),
			yaml.YAML("padding", altsrc.StringSourcer(params[1])),
		)
	}

	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		padding,
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
		},
	}
}

// NewTokenFlag returns the --token flag. The token comes from the flag, the
// environment or the config file, in that order.
func NewTokenFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "token",
		Usage: "GitHub access token",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PRCTL_TOKEN"),
			cli.EnvVar("GITHUB_TOKEN"),
		),
	}
	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}
	return flag
}

// NewAPIURLFlag returns the --api-url flag used to reach GitHub Enterprise.
func NewAPIURLFlag(params ...string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "api-url",
		Usage: "GitHub REST API root",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("PRCTL_API_URL"),
		),
		Value: github.DefaultAPIURL,
	}
	if len(params) == 2 {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}
	return flag
}

// NewColorFlag returns --color for commands that print diffs rather than
// tables.
func NewColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "color the diff",
		Sources: cli.NewValueSourceChain(cli.EnvVar("PRCTL_COLOR")),
	}
}

// NameSpacedValueChainFlagFromConfigFile appends the namespaced ("prs.token")
// then global ("token") config file keys to flag's sources.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain,
		yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path)),
		yaml.YAML(flag.Name, altsrc.StringSourcer(path)),
	)
	return flag
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
