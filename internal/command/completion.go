// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/prctl/prctl/internal/meta"
)

const bashCompletionScript = `# bash completion for prctl
_prctl()
{
    local cur prev cmd opts
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "user prs files content comments comment nbdiff review completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local conn="--token --api-url"
    local common="$conn --attrs -a --color -c --filter -f --local -l --output -o --padding --sort -s --titles -t --tldr --schema"
    local diff="--color -c --all --output -o --tldr"

    case "$cmd" in
        user|files)
            opts="$common" ;;
        prs)
            opts="$common --filter-by --user -u" ;;
        content)
            opts="$common --side" ;;
        comments)
            opts="$common --threaded" ;;
        comment)
            opts="$common --text -m --line --commit --reply-to" ;;
        nbdiff)
            opts="$diff"
            if [[ "$cur" != -* ]]; then
                COMPREPLY=( $(compgen -f -X '!*.ipynb' -- "$cur") $(compgen -d -- "$cur") )
                return 0
            fi
            ;;
        review)
            opts="$diff $conn --comments" ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
            return 0 ;;
        --filter-by)
            COMPREPLY=( $(compgen -W "created assigned" -- "$cur") )
            return 0 ;;
        --side)
            COMPREPLY=( $(compgen -W "base head" -- "$cur") )
            return 0 ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _prctl prctl
`

const zshCompletionScript = `#compdef prctl

_prctl() {
  local -a cmds
  cmds=(
    'user:show the authenticated user'
    'prs:list open pull requests'
    'files:list the files changed by a pull request'
    'content:show a file at the base and head of a pull request'
    'comments:list review comments on a pull request file'
    'comment:post a review comment on a pull request file'
    'nbdiff:diff two local notebooks'
    'review:diff a notebook across a pull request'
    'completion:generate shell completion script'
  )

  local -a conn common diff
  conn=(
    '--token[GitHub access token]:token'
    '--api-url[GitHub REST API root]:url'
  )
  common=(
    $conn
    '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
    '(-c --color)'{-c,--color}'[enable colored text]'
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
    '(-l --local)'{-l,--local}'[local timestamps]'
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
    '--padding[column padding]:padding'
    '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
    '(-t --titles)'{-t,--titles}'[show titles]'
    '--schema[list attributes]'
    '--tldr[show tldr page]'
  )
  diff=(
    '(-c --color)'{-c,--color}'[color the diff]'
    '--all[show unchanged cells]'
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'prctl commands' cmds
    return
  fi

  case $words[2] in
    user|files)
      _arguments -C $common '1:pull request'
      ;;
    prs)
      _arguments -C $common \
        '--filter-by[which pull requests]:filter:(created assigned)' \
        '(-u --user)'{-u,--user}'[GitHub login]:user'
      ;;
    content)
      _arguments -C $common '--side[one side only]:side:(base head)' '1:pull request' '2:file'
      ;;
    comments)
      _arguments -C $common '--threaded[group replies]' '1:pull request' '2:file'
      ;;
    comment)
      _arguments -C $common \
        '(-m --text)'{-m,--text}'[comment body]:text' \
        '--line[diff position]:line' \
        '--commit[commit sha]:sha' \
        '--reply-to[comment id]:id' \
        '1:pull request' '2:file'
      ;;
    nbdiff)
      _arguments -C $diff '1:previous:_files -g "*.ipynb"' '2:current:_files -g "*.ipynb"'
      ;;
    review)
      _arguments -C $diff $conn '--comments[print review threads]' '1:pull request' '2:file'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _prctl prctl
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	w := writer(cmd)

	shell := cmd.Args().Get(0)
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: prctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "prctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
