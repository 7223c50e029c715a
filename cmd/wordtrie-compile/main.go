// Copyright 2025 The wordtrie Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command wordtrie-compile builds a binary trie index from a word list.
//
// The input holds one "article<TAB>word" pair per line. Blank lines and lines
// starting with '#' are ignored.
//
//	wordtrie-compile -in words.tsv -out data/index.dat
package main

import (
	"bufio"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/charmbracelet/log"
)

func main() {
	in := flag.String("in", "", "Word list to compile (.tsv or .txt)")
	out := flag.String("out", "data/index.dat", "Index file to write")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Parse()

	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
	}
	lg := logger.NewWithConfig("compile", level, false, *debugMode, log.TextFormatter)
	log.SetDefault(lg)

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	format, err := dictionary.DetectFileFormat(*in)
	if err != nil {
		lg.Fatalf("Invalid word list: %v", err)
	}
	if format != dictionary.FormatWordList {
		info, _ := dictionary.GetFormatInfo(format)
		lg.Fatalf("%s is a %s, expected a word list", *in, info.Description)
	}

	if err := utils.EnsureDir(filepath.Dir(*out)); err != nil {
		lg.Fatalf("Creating output dir: %v", err)
	}

	src, err := os.Open(*in)
	if err != nil {
		lg.Fatalf("Opening word list: %v", err)
	}
	defer src.Close()

	// Write next to the target and rename so a failed run never leaves a partial index.
	tmp, err := os.CreateTemp(filepath.Dir(*out), ".wordtrie-*.tmp")
	if err != nil {
		lg.Fatalf("Creating temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	start := time.Now()
	bw := bufio.NewWriter(tmp)
	n, err := dictionary.Compile(bufio.NewReader(src), bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		lg.Fatalf("Compiling %s: %v", *in, err)
	}

	if err := os.Rename(tmp.Name(), *out); err != nil {
		lg.Fatalf("Writing %s: %v", *out, err)
	}

	if err := dictionary.ValidateFileFormat(*out, dictionary.FormatIndex); err != nil {
		lg.Fatalf("Compiled index failed validation: %v", err)
	}

	info, _ := dictionary.GetFormatInfo(dictionary.FormatIndex)
	lg.Info("Index written", "format", info.Description, "words", n, "path", *out, "took", time.Since(start))
}
