// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --backend, --list, --config, --log, --poll, --verbose, --version

package main

import (
	"flag"
	"time"
)

type cliArgs struct {
	backend string
	list    bool
	config  string
	logFile string
	poll    time.Duration
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	args := bindFlags(flag.CommandLine)
	flag.Parse()
	return *args
}

// bindFlags registers the command-line flags on fs.
func bindFlags(fs *flag.FlagSet) *cliArgs {
	var args cliArgs

	fs.StringVar(&args.backend, "backend", "", "Backend to open (auto, termios, tcell, terminfo, dummy, ...)")
	fs.BoolVar(&args.list, "list", false, "List backends in priority order and exit")
	fs.StringVar(&args.config, "config", "", "Read this config file instead of ~/.termroot and ./.termroot")
	fs.StringVar(&args.logFile, "log", "", "Append log output to this file")
	fs.DurationVar(&args.poll, "poll", 0, "Input poll timeout per run-loop iteration (e.g. 50ms)")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	return &args
}
