package main

import (
	"flag"
	"fmt"
	"os"

	internal "github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/batcher"
	"github.com/opabravo/tensorflow-1.4-billion-password-analysis/passprep/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	log := internal.GetLogger()

	switch os.Args[1] {
	case "build":
		fs := flag.NewFlagSet("build", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		corpusPath := fs.String("corpus", "", "path to the tab-separated corpus file")
		_ = fs.Parse(os.Args[2:])
		if *corpusPath == "" {
			fmt.Fprintln(os.Stderr, "build: -corpus is required")
			os.Exit(2)
		}
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		if err := batcher.Build(cfg, *corpusPath); err != nil {
			log.Fatal().Err(err).Msg("build failed")
		}

	case "load":
		fs := flag.NewFlagSet("load", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		_ = fs.Parse(os.Args[2:])
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		inputs, targets, err := batcher.Load(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("load failed")
		}
		fmt.Printf("inputs: %d records\ntargets: %d records\n", len(inputs), len(targets))

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s <command> [flags]

commands:
  build   build the vocabulary and vectorize the corpus into the dataset archive
  load    load the dataset archive and report its shape
`, internal.DefaultAppName)
}
