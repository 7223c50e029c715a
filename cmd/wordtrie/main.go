// Copyright 2025 The wordtrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtrie prefix search server and CLI [DBG] application.

wordtrie answers prefix queries against a compact binary trie index of words
and article numbers. It can operate as a MessagePack IPC server for
integration with editors and dictionary front ends, or as a CLI application
for testing and debugging.

The index is loaded lazily on the first request and shared by every caller
for the lifetime of the process. A failed load is reported to the caller and
retried on the next request.

# Usage

Start the server with default settings:

	wordtrie

Use a custom index file and enable debug mode:

	wordtrie -index /path/to/words.dat -d

Run in CLI mode for interactive testing:

	wordtrie -c -limit 10 -prmin 2

Index files are produced from tab separated "article<TAB>word" lists with the
wordtrie-compile tool.

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_limit = 100
	default_limit = 20
	max_prefix = 60

	[index]
	path = "data/index.dat"
	use_mmap = true

The config file is created with defaults if it doesn't exist. Flags given on
the command line override the file.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "p": "cas", "l": 20}

is answered with

	{"id": "req1", "s": [{"w": "casa", "a": 1, "r": 1}], "c": 1, "t": 12}

See package server for the full set of messages.

# Command Line Flags

	-index string
	    Index file to search (default from config)
	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of results to return in CLI mode
	-prmin int
	    Minimum prefix length in CLI mode
	-prmax int
	    Maximum prefix length in CLI mode
	-no-filter
	    Disable input filtering for debugging
	-mmap
	    Memory map the index file instead of reading it
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, index loading and the chosen front end.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	indexPath := flag.String("index", defaultConfig.Index.Path, "Index file to search")
	configPath := flag.String("config", "", "Path to a custom config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of results to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for searches (0 <= n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for searches")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	useMmap := flag.Bool("mmap", defaultConfig.Index.UseMmap, "Memory map the index file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, usedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if usedConfigPath != "" {
		log.Debugf("Using config file: (%s)", usedConfigPath)
	}

	// Explicit flags win over the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["index"] {
		*indexPath = appConfig.Index.Path
	}
	if !set["mmap"] {
		*useMmap = appConfig.Index.UseMmap
	}
	if !set["limit"] {
		*limit = appConfig.CLI.DefaultLimit
	}
	if !set["prmin"] {
		*minPrefix = appConfig.CLI.DefaultMinLen
	}
	if !set["prmax"] {
		*maxPrefix = appConfig.CLI.DefaultMaxLen
	}
	if !set["no-filter"] {
		*noFilter = appConfig.CLI.DefaultNoFilter
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	resolvedIndex, err := pathResolver.GetIndexPath(*indexPath)
	if err != nil {
		if *cliMode {
			log.Fatalf("Failed to resolve index file: (%v)", err)
		}
		// The server keeps running and reports the failure per request.
		log.Warnf("Index file not found, requests will fail until it exists: %s", *indexPath)
		resolvedIndex = *indexPath
	}
	log.Debugf("Using index at: %s (mmap=%v)", resolvedIndex, *useMmap)

	shared := dictionary.NewShared(dictionary.NewLoader(resolvedIndex, *useMmap))
	completer := suggest.NewLazyCompleter(shared)

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		if _, err := shared.Get(); err != nil {
			log.Fatalf("Failed to load index: %v", err)
		}
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)

	showStartupInfo(resolvedIndex)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ wordtrie ] Prefix search over compact word indexes")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(indexPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" wordtrie ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("index: ( %s )", utils.GetAbsolutePath(indexPath))
	log.Info("status: ready (index loads on first request)")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
