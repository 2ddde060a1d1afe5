// Command radarsim is the CLI front door exposing sim_radar, sim_rcs,
// sim_lidar, the free-tier advisory switch, and direct ray-log read
// access, per spec.md §6's five operations. It is a thin demonstration
// binary, not a scene-file loader: every subcommand builds its own demo
// scene in Go and reports what the engine computed.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/radarsim/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(os.Stdout)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "version", "-version", "--version":
		fmt.Printf("radarsim v%s (git SHA: %s)\n", version.Version, version.GitSHA)
	case "sim-radar":
		runSimRadar(args)
	case "sim-rcs":
		runSimRCS(args)
	case "sim-lidar":
		runSimLidar(args)
	case "ray-log":
		runRayLog(args)
	case "plot":
		runPlot(args)
	case "serve":
		runServe(args)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "radarsim: unknown subcommand %q\n\n", subcommand)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `radarsim: shoot-and-bounce-ray physical-optics radar simulator

Usage:
  radarsim <subcommand> [flags]

Subcommands:
  sim-radar   run a demo radar scene through sim_radar and report the baseband grid
  sim-rcs     sweep monostatic RCS over incidence angle for a demo target
  sim-lidar   scan a demo scene with sim_lidar and report the point cloud
  ray-log     dump the records in a ray log written by sim-radar -log-path
  plot        render a PNG diagnostic (baseband magnitude or RCS-vs-angle)
  serve       serve an interactive HTML dashboard of a demo run
  version     print version information

Run "radarsim <subcommand> -h" for subcommand-specific flags.`)
}
