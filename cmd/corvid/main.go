// Command corvid is the engine's entrypoint: it wires configuration and
// logging, optionally runs a one-shot perft count, and otherwise starts the
// UCI protocol loop. Grounded on the teacher's cmd/FrankyGo/main.go (flag
// set shape, config.Setup()-then-flag-overrides ordering, perft flag,
// uci.NewUciHandler().Loop()) and its search/alphabeta_test.go for the
// pkg/profile CPU-profiling pattern, offered here as a flag instead of a
// commented-out defer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/pkg/profile"

	"github.com/dkobel/corvid/internal/engineconfig"
	"github.com/dkobel/corvid/internal/enginelog"
	"github.com/dkobel/corvid/internal/perft"
	"github.com/dkobel/corvid/internal/position"
	"github.com/dkobel/corvid/internal/uci"
)

func main() {
	configPath := flag.String("config", "./corvid.toml", "path to configuration settings file")
	logLevel := flag.String("loglvl", "", "standard log level (critical|error|warning|notice|info|debug)")
	perftDepth := flag.Int("perft", 0, "run perft to the given depth on -fen (or the start position) and exit")
	fen := flag.String("fen", position.StartFEN, "fen used by -perft")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile of this run to ./cpu.pprof")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	engineconfig.Setup(*configPath)
	if *logLevel != "" {
		if lvl, err := logging.LogLevel(*logLevel); err == nil {
			enginelog.Level = lvl
		}
	} else {
		enginelog.Level = engineconfig.LogLevel()
	}

	if *perftDepth > 0 {
		p, err := position.FromFEN(*fen)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid -fen:", err)
			os.Exit(1)
		}
		perft.Report(p, *perftDepth)
		return
	}

	uci.NewHandler().Loop()
}
