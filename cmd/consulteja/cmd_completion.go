package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: consulteja completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  consulteja completion bash > /usr/local/etc/bash_completion.d/consulteja\n")
		fmt.Fprintf(os.Stderr, "  consulteja completion zsh > \"${fpath[1]}/_consulteja\"\n")
		fmt.Fprintf(os.Stderr, "  consulteja completion fish > ~/.config/fish/completions/consulteja.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	switch shell := fs.Arg(0); shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		os.Exit(1)
	}
}

func generateBashCompletion() string {
	return `# bash completion for consulteja                         -*- shell-script -*-

_consulteja() {
    local cur prev words cword
    _init_completion || return

    local commands="lookup history prefs providers serve completion version help"

    local lookup_flags="--config --output --no-history --verbose --timeout"
    local history_flags="--config --format --output"
    local history_cmds="list show export clear"
    local prefs_cmds="show theme color-blind"
    local serve_flags="--config --addr"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands} --config --theme --version" -- "${cur}"))
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --config)
            _filedir '@(yaml|yml)'
            return
            ;;
        --output)
            case "${command}" in
                lookup)
                    COMPREPLY=($(compgen -W "text json yaml" -- "${cur}"))
                    ;;
                *)
                    _filedir
                    ;;
            esac
            return
            ;;
        --format)
            COMPREPLY=($(compgen -W "json yaml" -- "${cur}"))
            return
            ;;
        --timeout|--addr|--theme)
            return
            ;;
        theme)
            COMPREPLY=($(compgen -W "light dark" -- "${cur}"))
            return
            ;;
        color-blind)
            COMPREPLY=($(compgen -W "on off" -- "${cur}"))
            return
            ;;
    esac

    case "${command}" in
        lookup)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${lookup_flags}" -- "${cur}"))
            fi
            ;;
        history)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            else
                COMPREPLY=($(compgen -W "${history_cmds}" -- "${cur}"))
            fi
            ;;
        prefs)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "--config" -- "${cur}"))
            else
                COMPREPLY=($(compgen -W "${prefs_cmds}" -- "${cur}"))
            fi
            ;;
        providers)
            COMPREPLY=($(compgen -W "--config" -- "${cur}"))
            ;;
        serve)
            COMPREPLY=($(compgen -W "${serve_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _consulteja consulteja
`
}

func generateZshCompletion() string {
	return `#compdef consulteja

# zsh completion for consulteja

_consulteja() {
    local -a commands
    commands=(
        'lookup:Look up one or more barcodes'
        'history:List, show, export or clear saved lookups'
        'prefs:Show or change theme and color-blind mode'
        'providers:List product databases in fallback order'
        'serve:Start the HTTP API'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--config[Config file]:config file:_files -g "*.y(a|)ml"' \
        '--theme[Custom theme name]:theme:' \
        '--version[Print version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'consulteja commands' commands
            ;;
        args)
            case $words[1] in
                lookup)
                    _arguments \
                        '--config[Config file]:config file:_files -g "*.y(a|)ml"' \
                        '--output[Output format]:format:(text json yaml)' \
                        '--no-history[Do not record found products]' \
                        '--verbose[Show all fields and provider attempts]' \
                        '--timeout[Overall timeout per lookup]:timeout:' \
                        '*:barcode:'
                    ;;
                history)
                    _arguments \
                        '--config[Config file]:config file:_files -g "*.y(a|)ml"' \
                        '--format[Export format]:format:(json yaml)' \
                        '--output[Export file]:output file:_files' \
                        '1:action:(list show export clear)' \
                        '2:entry id:'
                    ;;
                prefs)
                    _arguments \
                        '--config[Config file]:config file:_files -g "*.y(a|)ml"' \
                        '1:action:(show theme color-blind)' \
                        '2:value:(light dark on off)'
                    ;;
                providers)
                    _arguments \
                        '--config[Config file]:config file:_files -g "*.y(a|)ml"'
                    ;;
                serve)
                    _arguments \
                        '--config[Config file]:config file:_files -g "*.y(a|)ml"' \
                        '--addr[Listen address]:address:'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_consulteja "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for consulteja

complete -c consulteja -f

# Subcommands
complete -c consulteja -n '__fish_use_subcommand' -a lookup -d 'Look up one or more barcodes'
complete -c consulteja -n '__fish_use_subcommand' -a history -d 'List, show, export or clear saved lookups'
complete -c consulteja -n '__fish_use_subcommand' -a prefs -d 'Show or change theme and color-blind mode'
complete -c consulteja -n '__fish_use_subcommand' -a providers -d 'List product databases in fallback order'
complete -c consulteja -n '__fish_use_subcommand' -a serve -d 'Start the HTTP API'
complete -c consulteja -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c consulteja -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c consulteja -n '__fish_use_subcommand' -a help -d 'Show help message'

# Shared
complete -c consulteja -l config -d 'Config file' -rF

# lookup flags
complete -c consulteja -n '__fish_seen_subcommand_from lookup' -l output -d 'Output format' -ra 'text json yaml'
complete -c consulteja -n '__fish_seen_subcommand_from lookup' -l no-history -d 'Do not record found products'
complete -c consulteja -n '__fish_seen_subcommand_from lookup' -l verbose -d 'Show all fields and provider attempts'
complete -c consulteja -n '__fish_seen_subcommand_from lookup' -l timeout -d 'Overall timeout per lookup' -r

# history
complete -c consulteja -n '__fish_seen_subcommand_from history' -a 'list show export clear'
complete -c consulteja -n '__fish_seen_subcommand_from history' -l format -d 'Export format' -ra 'json yaml'
complete -c consulteja -n '__fish_seen_subcommand_from history' -l output -d 'Export file' -rF

# prefs
complete -c consulteja -n '__fish_seen_subcommand_from prefs' -a 'show theme color-blind'

# serve
complete -c consulteja -n '__fish_seen_subcommand_from serve' -l addr -d 'Listen address' -r

# completion - shell names
complete -c consulteja -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
